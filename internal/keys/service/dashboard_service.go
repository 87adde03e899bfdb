package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/dto"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
	"github.com/yerk0w/EduLifeFor-merge/internal/keys/repository"
	"github.com/yerk0w/EduLifeFor-merge/pkg/validate"
)

const (
	recentTransfers = 5
	dailyWindow     = 7
)

var transferStatuses = []string{
	model.TransferPending,
	model.TransferApproved,
	model.TransferRejected,
	model.TransferCancelled,
}

// DashboardService per-user and administrative overviews
type DashboardService interface {
	// ForCaller the caller's keys and pending requests; admins see every key
	ForCaller(ctx context.Context, caller Caller) (*dto.DashboardResponse, error)
	Admin(ctx context.Context) (*dto.AdminDashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	dir    Directory
	logger *zap.Logger

	now func() time.Time
}

// NewDashboardService creates a DashboardService. dir may be nil.
func NewDashboardService(repo *repository.Repository, dir Directory, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, dir: dir, logger: logger, now: time.Now}
}

func (s *dashboardService) ForCaller(ctx context.Context, caller Caller) (*dto.DashboardResponse, error) {
	var (
		keys []model.KeyWithHolder
		err  error
	)
	if caller.IsAdmin() {
		keys, err = s.repo.Key.ListWithHolders(ctx)
	} else {
		keys, err = s.repo.Key.ListHeldBy(ctx, caller.ID)
	}
	if err != nil {
		s.logger.Error("dashboard keys failed", zap.Uint("user_id", caller.ID), zap.Error(err))
		return nil, err
	}

	incoming, err := s.repo.Transfer.List(ctx, repository.TransferFilter{Status: model.TransferPending, ToTeacherID: caller.ID})
	if err != nil {
		return nil, err
	}
	outgoing, err := s.repo.Transfer.List(ctx, repository.TransferFilter{Status: model.TransferPending, FromTeacherID: caller.ID})
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TeacherID:        caller.ID,
		KeysCount:        len(keys),
		Keys:             toKeyResponses(ctx, keys, newTeacherNames(s.dir, s.logger)),
		IncomingRequests: toTransferResponses(incoming),
		OutgoingRequests: toTransferResponses(outgoing),
	}, nil
}

func (s *dashboardService) Admin(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	total, assigned, err := s.repo.Key.Counts(ctx)
	if err != nil {
		s.logger.Error("count keys failed", zap.Error(err))
		return nil, err
	}
	pending, err := s.repo.Transfer.List(ctx, repository.TransferFilter{Status: model.TransferPending})
	if err != nil {
		return nil, err
	}
	stats, err := s.transferStats(ctx)
	if err != nil {
		return nil, err
	}

	recent := pending
	if len(recent) > recentTransfers {
		recent = recent[:recentTransfers]
	}
	return &dto.AdminDashboardResponse{
		TotalKeys:        total,
		AssignedKeys:     assigned,
		UnassignedKeys:   total - assigned,
		PendingTransfers: int64(len(pending)),
		TransferStats:    *stats,
		RecentTransfers:  toTransferResponses(recent),
	}, nil
}

// transferStats status totals plus approvals per local day over the last
// week, today included; days without approvals are present with 0
func (s *dashboardService) transferStats(ctx context.Context) (*dto.TransferStats, error) {
	rows, err := s.repo.Transfer.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	stats := &dto.TransferStats{
		StatusCounts:   make(map[string]int64, len(transferStatuses)),
		DailyTransfers: make(map[string]int64, dailyWindow),
	}
	for _, st := range transferStatuses {
		stats.StatusCounts[st] = 0
	}
	for _, r := range rows {
		stats.StatusCounts[r.Label] = r.Count
	}

	now := s.now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	since := today.AddDate(0, 0, -(dailyWindow - 1))
	for i := 0; i < dailyWindow; i++ {
		stats.DailyTransfers[since.AddDate(0, 0, i).Format(validate.DateLayout)] = 0
	}

	approved, err := s.repo.Transfer.ApprovedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	for _, at := range approved {
		day := at.In(time.Local).Format(validate.DateLayout)
		if _, ok := stats.DailyTransfers[day]; ok {
			stats.DailyTransfers[day]++
		}
	}
	return stats, nil
}
