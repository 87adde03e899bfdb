package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/replay"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/repository"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/token"
	apperrors "github.com/yerk0w/EduLifeFor-merge/pkg/errors"
	"github.com/yerk0w/EduLifeFor-merge/pkg/roles"
)

const (
	timeLayout  = time.RFC3339
	unknownName = "Unknown"
	recordedMsg = "Посещение успешно зафиксировано"
)

// AttendanceService QR issue and redemption
type AttendanceService interface {
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	// Validate redeems a QR code for req.UserID, or the caller when unset
	Validate(ctx context.Context, caller Caller, req *dto.ValidateRequest) (*dto.ValidateResponse, error)
	// Sessions attendance history of userID, newest first
	Sessions(ctx context.Context, caller Caller, userID uint) (*dto.UserSessionsResponse, error)
}

type attendanceService struct {
	repo    *repository.Repository
	codec   *token.Codec
	used    replay.Store
	dir     Directory
	catalog Catalog
	logger  *zap.Logger

	now func() time.Time
}

// NewAttendanceService creates an AttendanceService. dir and catalog may be nil.
func NewAttendanceService(repo *repository.Repository, codec *token.Codec, used replay.Store, dir Directory, catalog Catalog, logger *zap.Logger) AttendanceService {
	return &attendanceService{
		repo:    repo,
		codec:   codec,
		used:    used,
		dir:     dir,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *attendanceService) Generate(_ context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	code, p, err := s.codec.Issue(req.SubjectID, req.ShiftID, req.TeacherID)
	if err != nil {
		s.logger.Error("issue QR token failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("QR code issued",
		zap.String("token_id", p.TokenID),
		zap.Uint("subject_id", p.SubjectID),
		zap.Uint("teacher_id", p.TeacherID),
	)
	return &dto.GenerateResponse{
		QRCode:    code,
		TokenID:   p.TokenID,
		ExpiresAt: p.ExpiresAt().Format(timeLayout),
	}, nil
}

// ═══════════════════════════════════════════════════════════
// Validate: decode → one-shot check → ensure user → record → enrich
// ═══════════════════════════════════════════════════════════

func (s *attendanceService) Validate(ctx context.Context, caller Caller, req *dto.ValidateRequest) (*dto.ValidateResponse, error) {
	userID := req.UserID
	if userID == 0 {
		userID = caller.ID
	}
	if err := checkSelf(caller, userID); err != nil {
		return nil, err
	}

	p, err := s.codec.Decode(req.QRCode)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, ErrQRExpired
		}
		return nil, ErrInvalidQR
	}

	fresh, err := s.used.MarkUsed(ctx, p.TokenID, s.codec.TTL())
	if err != nil {
		s.logger.Error("replay store failed", zap.String("token_id", p.TokenID), zap.Error(err))
		return nil, ErrReplayDown
	}
	if !fresh {
		s.logger.Warn("QR code reused", zap.String("token_id", p.TokenID), zap.Uint("user_id", userID))
		return nil, ErrQRUsed
	}

	u, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &model.Session{
		UserID:      userID,
		SessionTime: now,
		SubjectID:   p.SubjectID,
		ShiftID:     p.ShiftID,
		TeacherID:   p.TeacherID,
		DayOfWeek:   p.DayOfWeek,
		TokenID:     p.TokenID,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("record session failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.logger.Info("attendance recorded",
		zap.Uint("session_id", session.ID),
		zap.Uint("user_id", userID),
		zap.Uint("subject_id", p.SubjectID),
	)

	return &dto.ValidateResponse{
		Success: true,
		Message: recordedMsg,
		SessionData: &dto.SessionData{
			SessionID:   session.ID,
			UserID:      userID,
			UserName:    u.DisplayName(),
			SubjectID:   p.SubjectID,
			SubjectName: s.subjectName(ctx, p.SubjectID),
			ShiftID:     p.ShiftID,
			TeacherID:   p.TeacherID,
			TeacherName: s.teacherName(ctx, p.TeacherID),
			DayOfWeek:   p.DayOfWeek,
			Timestamp:   now.Format(timeLayout),
		},
	}, nil
}

// ensureUser returns the local mirror, importing it from auth on first sight
func (s *attendanceService) ensureUser(ctx context.Context, userID uint) (*model.User, error) {
	u, err := s.repo.User.GetByID(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if s.dir == nil {
		return nil, ErrDirectoryDown
	}

	info, err := s.dir.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Warn("auth user lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, ErrDirectoryDown
	}

	u = &model.User{
		ID:       info.ID,
		Username: info.Username,
		FullName: info.FullName,
		Role:     info.Role,
	}
	if err := s.repo.User.Ensure(ctx, u); err != nil {
		s.logger.Error("store user mirror failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return u, nil
}

func (s *attendanceService) subjectName(ctx context.Context, id uint) string {
	if s.catalog == nil {
		return unknownName
	}
	subj, err := s.catalog.GetSubject(ctx, id)
	if err != nil || subj.Name == "" {
		s.logger.Warn("subject lookup failed", zap.Uint("subject_id", id), zap.Error(err))
		return unknownName
	}
	return subj.Name
}

func (s *attendanceService) teacherName(ctx context.Context, id uint) string {
	if s.dir == nil {
		return unknownName
	}
	t, err := s.dir.GetTeacher(ctx, id)
	if err != nil || t.FullName == "" {
		s.logger.Warn("teacher lookup failed", zap.Uint("teacher_id", id), zap.Error(err))
		return unknownName
	}
	return t.FullName
}

// ────────────────────── Sessions ──────────────────────

func (s *attendanceService) Sessions(ctx context.Context, caller Caller, userID uint) (*dto.UserSessionsResponse, error) {
	if err := checkSelf(caller, userID); err != nil {
		return nil, err
	}
	list, err := s.repo.Session.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list sessions failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	sessions := make([]dto.SessionResponse, 0, len(list))
	for i := range list {
		sessions = append(sessions, toSessionResponse(&list[i]))
	}
	return &dto.UserSessionsResponse{UserID: userID, Sessions: sessions}, nil
}

func toSessionResponse(s *model.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		SessionTime: s.SessionTime.Format(timeLayout),
		SubjectID:   s.SubjectID,
		ShiftID:     s.ShiftID,
		TeacherID:   s.TeacherID,
		DayOfWeek:   s.DayOfWeek,
	}
}

// checkSelf admins may act for anyone, everybody else only for themselves
func checkSelf(caller Caller, userID uint) error {
	if caller.Role == roles.Admin || caller.ID == userID {
		return nil
	}
	return ErrNotSelf
}
