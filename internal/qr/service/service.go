package service

import (
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/qr/replay"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/repository"
	"github.com/yerk0w/EduLifeFor-merge/internal/qr/token"
)

// Service aggregates every QR service
type Service struct {
	Attendance AttendanceService
	Schedule   ScheduleService
	Stats      StatsService
}

// NewService wires the aggregate. dir and catalog may be nil; lookups then fall back.
func NewService(repo *repository.Repository, codec *token.Codec, used replay.Store, dir Directory, catalog Catalog, logger *zap.Logger) *Service {
	return &Service{
		Attendance: NewAttendanceService(repo, codec, used, dir, catalog, logger),
		Schedule:   NewScheduleService(repo, dir, catalog, logger),
		Stats:      NewStatsService(repo, dir, catalog, logger),
	}
}
