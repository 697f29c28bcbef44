package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

func TestVoteService_Cast(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rows := []domain.ModuleMembership{{ModuleID: "m1", ContentID: "c1"}}

	setup := func() (*VoteService, *MockVoteRepo, *MockMembershipRepo) {
		votes := new(MockVoteRepo)
		memberships := new(MockMembershipRepo)
		return NewVoteService(votes, memberships), votes, memberships
	}

	t.Run("Success: upvote is stored and tallied", func(t *testing.T) {
		service, votes, memberships := setup()

		memberships.On("ListByModuleIDs", ctx, []string{"m1"}).Return(rows, nil)
		votes.On("Upsert", ctx, mock.MatchedBy(func(v *domain.ModuleVote) bool {
			return v.UserID == "user-1" && v.ModuleID == "m1" && v.Value == domain.VoteUp
		})).Return(nil)
		votes.On("ListByModule", ctx, "m1").Return([]domain.ModuleVote{
			{UserID: "user-1", ModuleID: "m1", Value: 1},
			{UserID: "user-2", ModuleID: "m1", Value: 1},
			{UserID: "user-3", ModuleID: "m1", Value: -1},
		}, nil)

		tally, err := service.Cast(ctx, CastVoteInput{UserID: "user-1", ModuleID: "m1", Value: 1})
		require.NoError(t, err)
		assert.Equal(t, &domain.VoteTally{ModuleID: "m1", Upvotes: 2, Downvotes: 1, Score: 1, UserVote: 1}, tally)
		votes.AssertExpectations(t)
	})

	t.Run("Success: zero retracts", func(t *testing.T) {
		service, votes, memberships := setup()

		memberships.On("ListByModuleIDs", ctx, []string{"m1"}).Return(rows, nil)
		votes.On("Delete", ctx, "user-1", "m1").Return(nil)
		votes.On("ListByModule", ctx, "m1").Return([]domain.ModuleVote{}, nil)

		tally, err := service.Cast(ctx, CastVoteInput{UserID: "user-1", ModuleID: "m1", Value: 0})
		require.NoError(t, err)
		assert.Equal(t, 0, tally.UserVote)
		votes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Fail: value out of range", func(t *testing.T) {
		service, votes, memberships := setup()

		memberships.On("ListByModuleIDs", ctx, []string{"m1"}).Return(rows, nil)

		_, err := service.Cast(ctx, CastVoteInput{UserID: "user-1", ModuleID: "m1", Value: 5})
		assert.ErrorIs(t, err, domain.ErrInvalidVote)
		votes.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Fail: unknown module", func(t *testing.T) {
		service, _, memberships := setup()

		memberships.On("ListByModuleIDs", ctx, []string{"ghost"}).Return([]domain.ModuleMembership{}, nil)

		_, err := service.Cast(ctx, CastVoteInput{UserID: "user-1", ModuleID: "ghost", Value: 1})
		assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	})

	t.Run("Fail: repository error", func(t *testing.T) {
		service, votes, memberships := setup()
		dbErr := errors.New("deadlock")

		memberships.On("ListByModuleIDs", ctx, []string{"m1"}).Return(rows, nil)
		votes.On("Upsert", ctx, mock.Anything).Return(dbErr)

		_, err := service.Cast(ctx, CastVoteInput{UserID: "user-1", ModuleID: "m1", Value: -1})
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestVoteService_Tally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	votes := new(MockVoteRepo)
	memberships := new(MockMembershipRepo)
	service := NewVoteService(votes, memberships)

	memberships.On("ListByModuleIDs", ctx, []string{"m1"}).Return([]domain.ModuleMembership{{ModuleID: "m1", ContentID: "c1"}}, nil)
	votes.On("ListByModule", ctx, "m1").Return([]domain.ModuleVote{
		{UserID: "user-2", ModuleID: "m1", Value: -1},
	}, nil)

	tally, err := service.Tally(ctx, "m1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, -1, tally.Score)
	assert.Equal(t, 0, tally.UserVote)

	_, err = service.Tally(ctx, " ", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidModuleID)
}
