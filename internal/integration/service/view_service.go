package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/integration/dto"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
)

// ViewService read-only views joined across services
type ViewService interface {
	TeacherSchedule(ctx context.Context, teacherID uint, q *dto.ScheduleQuery) (*dto.TeacherScheduleResponse, error)
}

type viewService struct {
	*base
}

// TeacherSchedule a teacher's lessons with the teacher's and each group's details.
// Groups are looked up once per request; a group the directory no longer
// knows keeps the names the schedule service reported.
func (s *viewService) TeacherSchedule(ctx context.Context, teacherID uint, q *dto.ScheduleQuery) (*dto.TeacherScheduleResponse, error) {
	if q.DateFrom != "" && q.DateTo != "" && q.DateFrom > q.DateTo {
		return nil, ErrInvalidRange
	}

	teacher, err := s.Directory.GetTeacher(ctx, teacherID)
	if err != nil {
		return nil, s.remote(err, ErrTeacherNotFound, ErrAuthDown, zap.Uint("teacher_id", teacherID))
	}
	lessons, err := s.schedule(ctx, client.ScheduleFilter{TeacherID: teacherID, DateFrom: q.DateFrom, DateTo: q.DateTo})
	if err != nil {
		return nil, err
	}

	groups := map[uint]*client.GroupInfo{}
	out := make([]dto.TeacherLesson, 0, len(lessons))
	for _, l := range lessons {
		g, seen := groups[l.GroupID]
		if !seen && l.GroupID != 0 {
			g, err = s.group(ctx, l.GroupID)
			if err != nil && !errors.Is(err, ErrGroupNotFound) {
				return nil, err
			}
			groups[l.GroupID] = g
		}

		lesson := dto.TeacherLesson{ScheduleEntry: l, TeacherPosition: teacher.Position}
		lesson.TeacherName = teacher.FullName
		lesson.TeacherDepartment = teacher.DepartmentName
		if g != nil {
			lesson.GroupName = g.Name
			lesson.FacultyName = g.FacultyName
			lesson.GroupYear = g.Year
		}
		out = append(out, lesson)
	}
	return &dto.TeacherScheduleResponse{TeacherInfo: *teacher, Schedule: out}, nil
}
