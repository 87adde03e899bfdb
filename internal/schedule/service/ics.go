package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

const icsProductID = "-//EduLife//Schedule//RU"

func (s *scheduleService) ExportICS(ctx context.Context, f *dto.ScheduleFilter) ([]byte, error) {
	entries, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return buildCalendar(entries, time.Now(), s.logger), nil
}

// buildCalendar one VEVENT per entry; entries with unparsable dates are skipped
func buildCalendar(entries []dto.ScheduleResponse, now time.Time, logger *zap.Logger) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("EduLife")

	for _, e := range entries {
		start, err := time.ParseInLocation(validate.DateLayout+" "+validate.TimeLayout, e.Date+" "+e.TimeStart, time.Local)
		if err != nil {
			logger.Warn("skip entry with bad start", zap.Uint("id", e.ID), zap.Error(err))
			continue
		}
		end, err := time.ParseInLocation(validate.DateLayout+" "+validate.TimeLayout, e.Date+" "+e.TimeEnd, time.Local)
		if err != nil {
			logger.Warn("skip entry with bad end", zap.Uint("id", e.ID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("schedule-%d@edulife", e.ID))
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(eventSummary(e))
		if e.ClassroomName != "" {
			event.SetLocation(e.ClassroomName)
		}
		event.SetDescription(eventDescription(e))
	}

	return []byte(cal.Serialize())
}

func eventSummary(e dto.ScheduleResponse) string {
	if e.LessonTypeName == "" {
		return e.SubjectName
	}
	return fmt.Sprintf("%s (%s)", e.SubjectName, e.LessonTypeName)
}

func eventDescription(e dto.ScheduleResponse) string {
	var parts []string
	if e.TeacherName != "" {
		parts = append(parts, "Преподаватель: "+e.TeacherName)
	}
	if e.GroupName != "" {
		parts = append(parts, "Группа: "+e.GroupName)
	}
	return strings.Join(parts, "\n")
}
