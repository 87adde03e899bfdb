package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

const statsSheet = "Посещаемость"

var weekdayNames = [7]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"}

// StatsService attendance aggregates
type StatsService interface {
	Stats(ctx context.Context, req *dto.StatsRequest) ([]model.AttendanceStat, error)
	// Export the same aggregates as an .xlsx workbook
	Export(ctx context.Context, req *dto.StatsRequest) (*bytes.Buffer, string, error)
}

type statsService struct {
	repo    *repository.Repository
	dir     Directory
	catalog Catalog
	logger  *zap.Logger
}

// NewStatsService creates a StatsService. dir and catalog only name rows in exports.
func NewStatsService(repo *repository.Repository, dir Directory, catalog Catalog, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, dir: dir, catalog: catalog, logger: logger}
}

func (s *statsService) Stats(ctx context.Context, req *dto.StatsRequest) ([]model.AttendanceStat, error) {
	rng, err := statsRange(req)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Session.Stats(ctx, rng)
	if err != nil {
		s.logger.Error("attendance stats failed", zap.Error(err))
		return nil, err
	}
	if rows == nil {
		rows = []model.AttendanceStat{}
	}
	return rows, nil
}

// statsRange turns inclusive dates into [start 00:00, end+1 00:00) in local time
func statsRange(req *dto.StatsRequest) (repository.StatsRange, error) {
	var rng repository.StatsRange
	if req.StartDate != "" {
		from, err := time.ParseInLocation(validate.DateLayout, req.StartDate, time.Local)
		if err != nil {
			return rng, ErrInvalidRange
		}
		rng.From = &from
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(validate.DateLayout, req.EndDate, time.Local)
		if err != nil {
			return rng, ErrInvalidRange
		}
		to := end.AddDate(0, 0, 1)
		rng.To = &to
	}
	if rng.From != nil && rng.To != nil && !rng.From.Before(*rng.To) {
		return rng, ErrInvalidRange
	}
	return rng, nil
}

// ═══════════════════════════════════════════════════════════
// Export
// ═══════════════════════════════════════════════════════════
//
// One sheet, one row per stats row:
//   | Предмет | Смена | Преподаватель | День недели | Посещений |

func (s *statsService) Export(ctx context.Context, req *dto.StatsRequest) (*bytes.Buffer, string, error) {
	rows, err := s.Stats(ctx, req)
	if err != nil {
		return nil, "", err
	}

	subjects := map[uint]string{}
	teachers := map[uint]string{}
	lookup := func(cache map[uint]string, id uint, fetch func(uint) (string, error)) string {
		if name, ok := cache[id]; ok {
			return name
		}
		name, err := fetch(id)
		if err != nil || name == "" {
			name = fmt.Sprintf("#%d", id)
		}
		cache[id] = name
		return name
	}
	subjectName := func(id uint) (string, error) {
		if s.catalog == nil {
			return "", ErrScheduleDown
		}
		subj, err := s.catalog.GetSubject(ctx, id)
		if err != nil {
			return "", err
		}
		return subj.Name, nil
	}
	teacherName := func(id uint) (string, error) {
		if s.dir == nil {
			return "", ErrDirectoryDown
		}
		t, err := s.dir.GetTeacher(ctx, id)
		if err != nil {
			return "", err
		}
		return t.FullName, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(statsSheet)
	if err != nil {
		return nil, "", ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(statsSheet, "A", "A", 32)
	f.SetColWidth(statsSheet, "B", "B", 8)
	f.SetColWidth(statsSheet, "C", "C", 28)
	f.SetColWidth(statsSheet, "D", "D", 14)
	f.SetColWidth(statsSheet, "E", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	header := []interface{}{"Предмет", "Смена", "Преподаватель", "День недели", "Посещений"}
	if err := f.SetSheetRow(statsSheet, "A1", &header); err != nil {
		return nil, "", ErrExportFailed
	}
	f.SetCellStyle(statsSheet, "A1", "E1", headerStyle)

	for i, r := range rows {
		day := ""
		if r.DayOfWeek >= 0 && r.DayOfWeek < len(weekdayNames) {
			day = weekdayNames[r.DayOfWeek]
		}
		line := []interface{}{
			lookup(subjects, r.SubjectID, subjectName),
			r.ShiftID,
			lookup(teachers, r.TeacherID, teacherName),
			day,
			r.AttendanceCount,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(statsSheet, cell, &line); err != nil {
			s.logger.Error("write attendance row failed", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportFailed
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write attendance workbook failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}
	return buf, exportName(req), nil
}

func exportName(req *dto.StatsRequest) string {
	switch {
	case req.StartDate != "" && req.EndDate != "":
		return fmt.Sprintf("attendance_%s_%s.xlsx", req.StartDate, req.EndDate)
	case req.StartDate != "":
		return fmt.Sprintf("attendance_from_%s.xlsx", req.StartDate)
	case req.EndDate != "":
		return fmt.Sprintf("attendance_to_%s.xlsx", req.EndDate)
	default:
		return "attendance.xlsx"
	}
}
