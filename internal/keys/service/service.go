package service

import (
	"go.uber.org/zap"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/repository"
)

// Service aggregates every key management service
type Service struct {
	Keys      KeyService
	Transfers TransferService
	History   HistoryService
	Dashboard DashboardService
}

// NewService wires the aggregate. dir may be nil, in which case holder
// names fall back to a placeholder.
func NewService(repo *repository.Repository, dir Directory, logger *zap.Logger) *Service {
	return &Service{
		Keys:      NewKeyService(repo, dir, logger),
		Transfers: NewTransferService(repo, logger),
		History:   NewHistoryService(repo, dir, logger),
		Dashboard: NewDashboardService(repo, dir, logger),
	}
}
