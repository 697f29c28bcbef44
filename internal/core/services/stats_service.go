package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

type StatsService struct {
	records      domain.ProgressRecordRepository
	completions  domain.CompletionRepository
	loginDays    domain.LoginDayRepository
	lookbackDays int
}

func NewStatsService(records domain.ProgressRecordRepository, completions domain.CompletionRepository, loginDays domain.LoginDayRepository, lookbackDays int) *StatsService {
	if lookbackDays < 1 {
		lookbackDays = DefaultStreakLookbackDays
	}
	return &StatsService{
		records:      records,
		completions:  completions,
		loginDays:    loginDays,
		lookbackDays: lookbackDays,
	}
}

func (s *StatsService) GetUserStats(ctx context.Context, userID string, today time.Time) (*domain.UserStats, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	var (
		modules      []domain.ModuleProgressRecord
		tracks       []domain.TrackProgressRecord
		contentsDone int
		loginDates   []time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if modules, err = s.records.ListModuleProgressByUser(gctx, userID); err != nil {
			return fmt.Errorf("stats service: list module progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if contentsDone, err = s.completions.CountCompleted(gctx, userID); err != nil {
			return fmt.Errorf("stats service: count completions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tracks, err = s.records.ListTrackProgressByUser(gctx, userID); err != nil {
			return fmt.Errorf("stats service: list track progress: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if loginDates, err = s.loginDays.ListRecent(gctx, userID, s.lookbackDays); err != nil {
			return fmt.Errorf("stats service: list login days: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := domain.ComputeUserStats(modules, contentsDone, tracks, loginDates, today)
	return &stats, nil
}
