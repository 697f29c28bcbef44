package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

type VoteService struct {
	repo        domain.VoteRepository
	memberships domain.MembershipRepository
}

func NewVoteService(repo domain.VoteRepository, memberships domain.MembershipRepository) *VoteService {
	return &VoteService{
		repo:        repo,
		memberships: memberships,
	}
}

type CastVoteInput struct {
	UserID   string
	ModuleID string
	Value    int
}

// Cast stores the user's vote; a value of 0 retracts it.
func (s *VoteService) Cast(ctx context.Context, input CastVoteInput) (*domain.VoteTally, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	moduleID := strings.TrimSpace(input.ModuleID)

	if err := s.ensureModule(ctx, moduleID); err != nil {
		return nil, err
	}

	if input.Value == domain.VoteRetract {
		if err := s.repo.Delete(ctx, input.UserID, moduleID); err != nil {
			return nil, fmt.Errorf("vote service: retract vote: %w", err)
		}
	} else {
		vote, err := domain.NewModuleVote(input.UserID, moduleID, input.Value)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Upsert(ctx, vote); err != nil {
			return nil, fmt.Errorf("vote service: save vote: %w", err)
		}
	}

	return s.tally(ctx, moduleID, input.UserID)
}

func (s *VoteService) Tally(ctx context.Context, moduleID, userID string) (*domain.VoteTally, error) {
	moduleID = strings.TrimSpace(moduleID)
	if err := s.ensureModule(ctx, moduleID); err != nil {
		return nil, err
	}
	return s.tally(ctx, moduleID, userID)
}

func (s *VoteService) tally(ctx context.Context, moduleID, userID string) (*domain.VoteTally, error) {
	votes, err := s.repo.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("vote service: list votes: %w", err)
	}
	tally := domain.TallyVotes(moduleID, userID, votes)
	return &tally, nil
}

func (s *VoteService) ensureModule(ctx context.Context, moduleID string) error {
	if moduleID == "" {
		return domain.ErrInvalidModuleID
	}
	memberships, err := s.memberships.ListByModuleIDs(ctx, []string{moduleID})
	if err != nil {
		return fmt.Errorf("vote service: lookup module: %w", err)
	}
	if len(memberships) == 0 {
		return domain.ErrModuleNotFound
	}
	return nil
}
