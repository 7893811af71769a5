package service

import (
	"context"

	"github.com/avvvet/ternarii-services/internal/gamesvc/models"
)

type OpsService struct {
	statsStore StatsStore
}

func NewOpsService(statsStore StatsStore) *OpsService {
	return &OpsService{statsStore: statsStore}
}

func (s *OpsService) Health(ctx context.Context) error {
	return s.statsStore.Ping(ctx)
}

func (s *OpsService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.statsStore.GetStats(ctx)
}
