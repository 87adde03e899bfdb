package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/client"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/notify"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

// NotificationService delivery of schedule change notifications
type NotificationService interface {
	ListPending(ctx context.Context) ([]dto.NotificationResponse, error)
	// ListForGroup notifications touching groupID, if the caller may see them
	ListForGroup(ctx context.Context, groupID, callerID uint, role string) ([]dto.NotificationResponse, error)
	// Dispatch delivers every pending notification once
	Dispatch(ctx context.Context) (*dto.DispatchResult, error)
	ChangeListener
}

type notificationService struct {
	repo    *repository.Repository
	dir     Directory
	senders []notify.Sender
	enabled bool
	logger  *zap.Logger

	// one dispatch run at a time
	mu  sync.Mutex
	now func() time.Time
}

// NewNotificationService creates a NotificationService.
// With enabled false Trigger does nothing; Dispatch still works on demand.
func NewNotificationService(repo *repository.Repository, dir Directory, senders []notify.Sender, enabled bool, logger *zap.Logger) NotificationService {
	return &notificationService{
		repo:    repo,
		dir:     dir,
		senders: senders,
		enabled: enabled,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *notificationService) ListPending(ctx context.Context) ([]dto.NotificationResponse, error) {
	list, err := s.repo.Notification.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(list), nil
}

func (s *notificationService) ListForGroup(ctx context.Context, groupID, callerID uint, role string) ([]dto.NotificationResponse, error) {
	if err := s.checkGroupAccess(ctx, groupID, callerID, role); err != nil {
		return nil, err
	}
	list, err := s.repo.Notification.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return toNotificationResponses(list), nil
}

func (s *notificationService) checkGroupAccess(ctx context.Context, groupID, callerID uint, role string) error {
	switch role {
	case roles.Admin:
		return nil
	case roles.Student:
		if s.dir == nil {
			return ErrDirectoryDown
		}
		st, err := s.dir.GetStudentByUser(ctx, callerID)
		if err != nil {
			return directoryErr(err)
		}
		if st.GroupID != groupID {
			return ErrGroupAccessDenied
		}
		return nil
	case roles.Teacher:
		if s.dir == nil {
			return ErrDirectoryDown
		}
		t, err := s.dir.GetTeacherByUser(ctx, callerID)
		if err != nil {
			return directoryErr(err)
		}
		ok, err := s.repo.Entry.ExistsForTeacherGroup(ctx, t.ID, groupID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrGroupAccessDenied
		}
		return nil
	default:
		return ErrGroupAccessDenied
	}
}

// directoryErr a missing profile denies access, anything else means auth is down
func directoryErr(err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return ErrGroupAccessDenied
	}
	return ErrDirectoryDown
}

// ═══════════════════════════════════════════════════════════
// Dispatch
// ═══════════════════════════════════════════════════════════

func (s *notificationService) Trigger(ctx context.Context) {
	if !s.enabled {
		return
	}
	bg := client.Detach(ctx)
	go func() {
		if _, err := s.Dispatch(bg); err != nil {
			s.logger.Error("background dispatch failed", zap.Error(err))
		}
	}()
}

func (s *notificationService) Dispatch(ctx context.Context) (*dto.DispatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, err := s.repo.Notification.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.DispatchResult{}
	var sent []uint
	for i := range pending {
		n := &pending[i]
		result.Processed++
		ok, err := s.deliver(ctx, n)
		if err != nil {
			s.logger.Warn("notification left pending", zap.Uint("id", n.ID), zap.Error(err))
			continue
		}
		if ok {
			sent = append(sent, n.ID)
		}
	}

	if err := s.repo.Notification.MarkSent(ctx, sent, s.now()); err != nil {
		s.logger.Error("mark notifications sent failed", zap.Error(err))
		return nil, err
	}
	result.Sent = len(sent)

	if result.Processed > 0 {
		s.logger.Info("notifications dispatched",
			zap.Int("processed", result.Processed),
			zap.Int("sent", result.Sent),
		)
	}
	return result, nil
}

// deliver sends one notification. It reports true when at least one channel
// accepted a message or there was nobody to tell. A returned error means the
// recipients could not be resolved.
func (s *notificationService) deliver(ctx context.Context, n *model.Notification) (bool, error) {
	before, err := decodeSnapshot(n.PreviousData)
	if err != nil {
		return false, err
	}
	after, err := decodeSnapshot(n.NewData)
	if err != nil {
		return false, err
	}

	recipients, nm, err := s.recipients(ctx, before, after)
	if err != nil {
		return false, err
	}
	if len(recipients) == 0 {
		return true, nil
	}

	msg := renderMessage(n.ChangeType, before, after, nm)
	delivered := false
	for _, r := range recipients {
		for _, sender := range s.senders {
			err := sender.Send(ctx, r, msg)
			switch {
			case err == nil:
				delivered = true
			case errors.Is(err, notify.ErrNoAddress):
			default:
				s.logger.Warn("notification channel failed",
					zap.Uint("id", n.ID),
					zap.String("channel", sender.Channel()),
					zap.Error(err),
				)
			}
		}
	}
	return delivered, nil
}

// recipients students of the group plus the teachers of both snapshots
func (s *notificationService) recipients(ctx context.Context, before, after *model.Snapshot) ([]notify.Recipient, names, error) {
	nm := names{teachers: make(map[uint]string)}
	if s.dir == nil {
		return nil, nm, nil
	}

	var groupID uint
	var teacherIDs []uint
	for _, snap := range []*model.Snapshot{after, before} {
		if snap == nil {
			continue
		}
		if groupID == 0 {
			groupID = snap.GroupID
		}
		teacherIDs = append(teacherIDs, snap.TeacherID)
	}

	var list []notify.Recipient
	seen := make(map[string]bool)
	add := func(name, email, telegram string) {
		key := email + "|" + telegram
		if key == "|" || seen[key] {
			return
		}
		seen[key] = true
		list = append(list, notify.Recipient{Name: name, Email: email, Telegram: telegram})
	}

	if groupID != 0 {
		if g, err := s.dir.GetGroup(ctx, groupID); err == nil {
			nm.group = g.Name
		}
		students, err := s.dir.GetStudentsByGroup(ctx, groupID)
		if err != nil {
			return nil, nm, err
		}
		for _, st := range students {
			add(st.FullName, st.Email, st.Telegram)
		}
	}

	for _, id := range teacherIDs {
		if id == 0 {
			continue
		}
		if _, done := nm.teachers[id]; done {
			continue
		}
		t, err := s.dir.GetTeacher(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				nm.teachers[id] = ""
				continue
			}
			return nil, nm, err
		}
		nm.teachers[id] = t.FullName
		add(t.FullName, t.Email, t.Telegram)
	}
	return list, nm, nil
}

func decodeSnapshot(raw []byte) (*model.Snapshot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func toNotificationResponses(list []model.Notification) []dto.NotificationResponse {
	result := make([]dto.NotificationResponse, 0, len(list))
	for i := range list {
		result = append(result, toNotificationResponse(&list[i]))
	}
	return result
}
