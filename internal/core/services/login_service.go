package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

const DefaultStreakLookbackDays = 365

// LoginService records active days and answers streak questions. The streak can
// never exceed lookbackDays because only that many recent days are read.
type LoginService struct {
	repo         domain.LoginDayRepository
	lookbackDays int
}

func NewLoginService(repo domain.LoginDayRepository, lookbackDays int) *LoginService {
	if lookbackDays < 1 {
		lookbackDays = DefaultStreakLookbackDays
	}
	return &LoginService{
		repo:         repo,
		lookbackDays: lookbackDays,
	}
}

// RecordLogin marks today as active and returns the resulting streak.
func (s *LoginService) RecordLogin(ctx context.Context, userID string, today time.Time) (domain.StreakSummary, error) {
	if userID == "" {
		return domain.StreakSummary{}, domain.ErrUnauthorized
	}

	day := domain.CalendarDay(today)
	if err := s.repo.Record(ctx, userID, day); err != nil {
		return domain.StreakSummary{}, fmt.Errorf("login service: record day: %w", err)
	}

	summary, err := s.GetStreak(ctx, userID, day)
	if err != nil {
		return domain.StreakSummary{}, err
	}
	summary.Day = day.Format(domain.DayLayout)
	return summary, nil
}

func (s *LoginService) GetStreak(ctx context.Context, userID string, today time.Time) (domain.StreakSummary, error) {
	if userID == "" {
		return domain.StreakSummary{}, domain.ErrUnauthorized
	}

	days, err := s.repo.ListRecent(ctx, userID, s.lookbackDays)
	if err != nil {
		return domain.StreakSummary{}, fmt.Errorf("login service: list days: %w", err)
	}

	return domain.NewStreakSummary(days, today), nil
}
