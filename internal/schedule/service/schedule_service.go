package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
)

// ChangeListener is told after a schedule change has been committed
type ChangeListener interface {
	Trigger(ctx context.Context)
}

// ScheduleService lessons and their change notifications
type ScheduleService interface {
	List(ctx context.Context, f *dto.ScheduleFilter) ([]dto.ScheduleResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error)
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id uint) error
	// ExportICS renders the filtered schedule as an iCalendar feed
	ExportICS(ctx context.Context, f *dto.ScheduleFilter) ([]byte, error)
}

type scheduleService struct {
	repo     *repository.Repository
	dir      Directory
	listener ChangeListener
	logger   *zap.Logger
}

// NewScheduleService creates a ScheduleService. dir and listener may be nil.
func NewScheduleService(repo *repository.Repository, dir Directory, listener ChangeListener, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:     repo,
		dir:      dir,
		listener: listener,
		logger:   logger,
	}
}

// ────────────────────── Reads ──────────────────────

func (s *scheduleService) List(ctx context.Context, f *dto.ScheduleFilter) ([]dto.ScheduleResponse, error) {
	entries, err := s.repo.Entry.List(ctx, toEntryFilters(f))
	if err != nil {
		s.logger.Error("list schedule failed", zap.Error(err))
		return nil, err
	}

	l := newLookup(s.dir, s.logger)
	result := make([]dto.ScheduleResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toScheduleResponse(ctx, &entries[i], l))
	}
	return result, nil
}

func (s *scheduleService) GetByID(ctx context.Context, id uint) (*dto.ScheduleResponse, error) {
	e, err := s.loadEntry(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	resp := toScheduleResponse(ctx, e, newLookup(s.dir, s.logger))
	return &resp, nil
}

func (s *scheduleService) loadEntry(ctx context.Context, repo *repository.Repository, id uint) (*model.Entry, error) {
	e, err := repo.Entry.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return e, nil
}

// ═══════════════════════════════════════════════════════════
// Writes
// ═══════════════════════════════════════════════════════════
//
// Every write stores a Notification with snapshots of the entry
// before and after, in the same transaction as the change itself.

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	e := &model.Entry{
		Date:         req.Date,
		TimeStart:    req.TimeStart,
		TimeEnd:      req.TimeEnd,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		GroupID:      req.GroupID,
		ClassroomID:  req.ClassroomID,
		LessonTypeID: req.LessonTypeID,
	}
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}

	var created *model.Entry
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Entry.Create(ctx, e); err != nil {
			return err
		}
		reloaded, err := s.loadEntry(ctx, tx, e.ID)
		if err != nil {
			return err
		}
		created = reloaded
		return s.record(ctx, tx, e.ID, model.ChangeCreate, nil, created)
	})
	if err != nil {
		s.logger.Error("create schedule entry failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("schedule entry created", zap.Uint("id", created.ID), zap.String("date", created.Date))
	s.changed(ctx)

	resp := toScheduleResponse(ctx, created, newLookup(s.dir, s.logger))
	return &resp, nil
}

func (s *scheduleService) Update(ctx context.Context, id uint, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	before, err := s.loadEntry(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	e := *before
	e.Subject, e.Classroom, e.LessonType = nil, nil, nil
	if req.Date != nil {
		e.Date = *req.Date
	}
	if req.TimeStart != nil {
		e.TimeStart = *req.TimeStart
	}
	if req.TimeEnd != nil {
		e.TimeEnd = *req.TimeEnd
	}
	if req.SubjectID != nil {
		e.SubjectID = *req.SubjectID
	}
	if req.TeacherID != nil {
		e.TeacherID = *req.TeacherID
	}
	if req.GroupID != nil {
		e.GroupID = *req.GroupID
	}
	if req.ClassroomID != nil {
		e.ClassroomID = *req.ClassroomID
	}
	if req.LessonTypeID != nil {
		e.LessonTypeID = *req.LessonTypeID
	}
	if err := s.validate(ctx, &e); err != nil {
		return nil, err
	}

	var after *model.Entry
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Entry.Update(ctx, &e); err != nil {
			return err
		}
		reloaded, err := s.loadEntry(ctx, tx, id)
		if err != nil {
			return err
		}
		after = reloaded
		return s.record(ctx, tx, id, model.ChangeUpdate, before, after)
	})
	if err != nil {
		s.logger.Error("update schedule entry failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	s.changed(ctx)

	resp := toScheduleResponse(ctx, after, newLookup(s.dir, s.logger))
	return &resp, nil
}

func (s *scheduleService) Delete(ctx context.Context, id uint) error {
	before, err := s.loadEntry(ctx, s.repo, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.Entry.Delete(ctx, id); err != nil {
			return err
		}
		return s.record(ctx, tx, id, model.ChangeDelete, before, nil)
	})
	if err != nil {
		s.logger.Error("delete schedule entry failed", zap.Uint("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("schedule entry deleted", zap.Uint("id", id))
	s.changed(ctx)
	return nil
}

// validate checks references and the time range
func (s *scheduleService) validate(ctx context.Context, e *model.Entry) error {
	if e.TimeStart >= e.TimeEnd {
		return ErrInvalidTimeRange
	}
	if _, err := s.repo.Subject.GetByID(ctx, e.SubjectID); err != nil {
		return notFoundAs(err, ErrUnknownSubject)
	}
	if _, err := s.repo.Classroom.GetByID(ctx, e.ClassroomID); err != nil {
		return notFoundAs(err, ErrUnknownClassroom)
	}
	if _, err := s.repo.LessonType.GetByID(ctx, e.LessonTypeID); err != nil {
		return notFoundAs(err, ErrUnknownLessonType)
	}
	return nil
}

// record stores the notification for one change
func (s *scheduleService) record(ctx context.Context, tx *repository.Repository, scheduleID uint, changeType string, before, after *model.Entry) error {
	n := &model.Notification{
		ScheduleID: scheduleID,
		ChangeType: changeType,
	}
	if before != nil {
		data, err := json.Marshal(model.SnapshotOf(before))
		if err != nil {
			return err
		}
		n.PreviousData = datatypes.JSON(data)
	}
	if after != nil {
		data, err := json.Marshal(model.SnapshotOf(after))
		if err != nil {
			return err
		}
		n.NewData = datatypes.JSON(data)
	}
	return tx.Notification.Create(ctx, n)
}

func (s *scheduleService) changed(ctx context.Context) {
	if s.listener != nil {
		s.listener.Trigger(ctx)
	}
}

func notFoundAs(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func toEntryFilters(f *dto.ScheduleFilter) *repository.EntryFilters {
	if f == nil {
		return nil
	}
	return &repository.EntryFilters{
		Date:        f.Date,
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		TeacherID:   f.TeacherID,
		GroupID:     f.GroupID,
		ClassroomID: f.ClassroomID,
	}
}
