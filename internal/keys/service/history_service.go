package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

const (
	defaultHistoryLimit = 100
	topLimit            = 5
	historySheet        = "История ключей"
)

var actionLabels = map[string]string{
	model.ActionInitialAssignment: "Первичная выдача",
	model.ActionAssignment:        "Выдача",
	model.ActionTransfer:          "Передача",
	model.ActionReturn:            "Возврат",
}

// HistoryService the audit trail of key movements
type HistoryService interface {
	ByKey(ctx context.Context, keyID uint) ([]dto.HistoryResponse, error)
	// ByTeacher rows where teacherID gave or received a key; self or admin
	ByTeacher(ctx context.Context, caller Caller, teacherID uint) ([]dto.HistoryResponse, error)
	List(ctx context.Context, q *dto.HistoryQuery) (*dto.HistoryPage, error)
	Stats(ctx context.Context) (*dto.HistoryStatsResponse, error)
	// Export the whole history as an .xlsx workbook
	Export(ctx context.Context) (*bytes.Buffer, string, error)
}

type historyService struct {
	repo   *repository.Repository
	dir    Directory
	logger *zap.Logger

	now func() time.Time
}

// NewHistoryService creates a HistoryService. dir may be nil.
func NewHistoryService(repo *repository.Repository, dir Directory, logger *zap.Logger) HistoryService {
	return &historyService{repo: repo, dir: dir, logger: logger, now: time.Now}
}

func (s *historyService) ByKey(ctx context.Context, keyID uint) ([]dto.HistoryResponse, error) {
	if _, err := s.repo.Key.GetByID(ctx, keyID); err != nil {
		return nil, notFoundAs(err, ErrKeyNotFound)
	}
	list, err := s.repo.History.ListByKey(ctx, keyID)
	if err != nil {
		s.logger.Error("key history failed", zap.Uint("key_id", keyID), zap.Error(err))
		return nil, err
	}
	return toHistoryResponses(list), nil
}

func (s *historyService) ByTeacher(ctx context.Context, caller Caller, teacherID uint) ([]dto.HistoryResponse, error) {
	if !caller.IsAdmin() && caller.ID != teacherID {
		return nil, ErrHistoryAccessDenied
	}
	list, err := s.repo.History.ListByTeacher(ctx, teacherID)
	if err != nil {
		s.logger.Error("teacher history failed", zap.Uint("teacher_id", teacherID), zap.Error(err))
		return nil, err
	}
	return toHistoryResponses(list), nil
}

func (s *historyService) List(ctx context.Context, q *dto.HistoryQuery) (*dto.HistoryPage, error) {
	limit := q.Limit
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	list, total, err := s.repo.History.List(ctx, limit, q.Offset)
	if err != nil {
		s.logger.Error("list history failed", zap.Error(err))
		return nil, err
	}
	return &dto.HistoryPage{
		History: toHistoryResponses(list),
		Total:   total,
		Limit:   limit,
		Offset:  q.Offset,
	}, nil
}

func (s *historyService) Stats(ctx context.Context) (*dto.HistoryStatsResponse, error) {
	actions, err := s.repo.History.ActionCounts(ctx)
	if err != nil {
		return nil, err
	}
	teachers, err := s.repo.History.TopTeachers(ctx, topLimit)
	if err != nil {
		return nil, err
	}
	keys, err := s.repo.History.TopKeys(ctx, topLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.HistoryStatsResponse{
		ActionCounts: make(map[string]int64, len(actions)),
		TopTeachers:  make([]dto.TeacherActivityResponse, 0, len(teachers)),
		TopKeys:      keys,
	}
	for _, a := range actions {
		resp.ActionCounts[a.Label] = a.Count
	}
	names := newTeacherNames(s.dir, s.logger)
	for _, t := range teachers {
		resp.TopTeachers = append(resp.TopTeachers, dto.TeacherActivityResponse{
			TeacherID:   t.TeacherID,
			TeacherName: names.name(ctx, t.TeacherID),
			Count:       t.Count,
		})
	}
	if resp.TopKeys == nil {
		resp.TopKeys = []model.KeyTransferCount{}
	}
	return resp, nil
}

// ═══════════════════════════════════════════════════════════
// Export
// ═══════════════════════════════════════════════════════════
//
//   | Дата | Ключ | Аудитория | Корпус | Действие | От кого | Кому | Примечание |

func (s *historyService) Export(ctx context.Context) (*bytes.Buffer, string, error) {
	list, _, err := s.repo.History.List(ctx, -1, 0)
	if err != nil {
		s.logger.Error("load history for export failed", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(historySheet)
	if err != nil {
		return nil, "", ErrExportFailed
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, width := range map[string]float64{"A": 20, "B": 10, "C": 12, "D": 20, "E": 18, "F": 26, "G": 26, "H": 40} {
		f.SetColWidth(historySheet, col, col, width)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	header := []interface{}{"Дата", "Ключ", "Аудитория", "Корпус", "Действие", "От кого", "Кому", "Примечание"}
	if err := f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return nil, "", ErrExportFailed
	}
	f.SetCellStyle(historySheet, "A1", "H1", headerStyle)

	names := newTeacherNames(s.dir, s.logger)
	party := func(id *uint) string {
		if id == nil {
			return ""
		}
		return names.name(ctx, *id)
	}

	for i := range list {
		h := &list[i]
		r := toHistoryResponse(h)
		action, ok := actionLabels[h.Action]
		if !ok {
			action = h.Action
		}
		line := []interface{}{
			h.Timestamp.Format("2006-01-02 15:04"),
			r.KeyCode,
			r.RoomNumber,
			r.Building,
			action,
			party(h.FromTeacherID),
			party(h.ToTeacherID),
			h.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(historySheet, cell, &line); err != nil {
			s.logger.Error("write history row failed", zap.Int("row", i+2), zap.Error(err))
			return nil, "", ErrExportFailed
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write history workbook failed", zap.Error(err))
		return nil, "", ErrExportFailed
	}
	return buf, fmt.Sprintf("key_history_%s.xlsx", s.now().Format(validate.DateLayout)), nil
}
