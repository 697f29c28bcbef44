package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

const MaxModulesPerRequest = 200

// ProgressRecomputer schedules the persisted progress of (user, module) to be rebuilt.
type ProgressRecomputer interface {
	Enqueue(userID, moduleID string)
}

type ProgressService struct {
	memberships domain.MembershipRepository
	completions domain.CompletionRepository
	recomputer  ProgressRecomputer
}

func NewProgressService(memberships domain.MembershipRepository, completions domain.CompletionRepository, recomputer ProgressRecomputer) *ProgressService {
	return &ProgressService{
		memberships: memberships,
		completions: completions,
		recomputer:  recomputer,
	}
}

type SetCompletionInput struct {
	UserID      string
	ModuleID    string
	ContentID   string
	IsCompleted bool
}

// normalizeIDs trims, drops empty ids and removes duplicates keeping the first occurrence.
func normalizeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *ProgressService) GetModuleProgress(ctx context.Context, userID string, moduleIDs []string) (map[string]domain.ModuleProgressInfo, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	ids := normalizeIDs(moduleIDs)
	if len(ids) == 0 {
		return map[string]domain.ModuleProgressInfo{}, nil
	}
	if len(ids) > MaxModulesPerRequest {
		return nil, fmt.Errorf("%w: %d > %d", domain.ErrTooManyModules, len(ids), MaxModulesPerRequest)
	}

	var (
		memberships []domain.ModuleMembership
		completions []domain.CompletionRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		memberships, err = s.memberships.ListByModuleIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("progress service: list memberships: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		completions, err = s.completions.ListByUserAndModuleIDs(gctx, userID, ids)
		if err != nil {
			return fmt.Errorf("progress service: list completions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.ComputeModuleProgress(ids, memberships, completions), nil
}

func (s *ProgressService) SetContentCompletion(ctx context.Context, input SetCompletionInput) error {
	if input.UserID == "" {
		return domain.ErrUnauthorized
	}

	moduleID := strings.TrimSpace(input.ModuleID)
	contentID := strings.TrimSpace(input.ContentID)
	if moduleID == "" {
		return domain.ErrInvalidModuleID
	}
	if contentID == "" {
		return domain.ErrInvalidContentID
	}

	memberships, err := s.memberships.ListByModuleIDs(ctx, []string{moduleID})
	if err != nil {
		return fmt.Errorf("progress service: list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return domain.ErrModuleNotFound
	}

	member := false
	for _, m := range memberships {
		if m.ModuleID == moduleID && m.ContentID == contentID {
			member = true
			break
		}
	}
	if !member {
		return domain.ErrContentNotInModule
	}

	record := domain.CompletionRecord{
		ModuleID:    moduleID,
		ContentID:   contentID,
		IsCompleted: input.IsCompleted,
	}
	if err := s.completions.Upsert(ctx, input.UserID, record); err != nil {
		return fmt.Errorf("progress service: save completion: %w", err)
	}

	if s.recomputer != nil {
		s.recomputer.Enqueue(input.UserID, moduleID)
	}

	return nil
}
