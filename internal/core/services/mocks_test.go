package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Ensure(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) ListByModuleIDs(ctx context.Context, moduleIDs []string) ([]domain.ModuleMembership, error) {
	args := m.Called(ctx, moduleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModuleMembership), args.Error(1)
}

type MockCompletionRepo struct {
	mock.Mock
}

func (m *MockCompletionRepo) ListByUserAndModuleIDs(ctx context.Context, userID string, moduleIDs []string) ([]domain.CompletionRecord, error) {
	args := m.Called(ctx, userID, moduleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompletionRecord), args.Error(1)
}

func (m *MockCompletionRepo) Upsert(ctx context.Context, userID string, record domain.CompletionRecord) error {
	return m.Called(ctx, userID, record).Error(0)
}

func (m *MockCompletionRepo) CountCompleted(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockProgressRecordRepo struct {
	mock.Mock
}

func (m *MockProgressRecordRepo) ListModuleProgress(ctx context.Context, userID string, moduleIDs []string) ([]domain.ModuleProgressRecord, error) {
	args := m.Called(ctx, userID, moduleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModuleProgressRecord), args.Error(1)
}

func (m *MockProgressRecordRepo) ListModuleProgressByUser(ctx context.Context, userID string) ([]domain.ModuleProgressRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModuleProgressRecord), args.Error(1)
}

func (m *MockProgressRecordRepo) GetModuleProgress(ctx context.Context, userID, moduleID string) (*domain.ModuleProgressRecord, error) {
	args := m.Called(ctx, userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModuleProgressRecord), args.Error(1)
}

func (m *MockProgressRecordRepo) UpsertModuleProgress(ctx context.Context, record *domain.ModuleProgressRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockProgressRecordRepo) ListTrackProgressByUser(ctx context.Context, userID string) ([]domain.TrackProgressRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackProgressRecord), args.Error(1)
}

func (m *MockProgressRecordRepo) GetTrackProgress(ctx context.Context, userID, trackID string) (*domain.TrackProgressRecord, error) {
	args := m.Called(ctx, userID, trackID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrackProgressRecord), args.Error(1)
}

func (m *MockProgressRecordRepo) UpsertTrackProgress(ctx context.Context, record *domain.TrackProgressRecord) error {
	return m.Called(ctx, record).Error(0)
}

type MockLoginDayRepo struct {
	mock.Mock
}

func (m *MockLoginDayRepo) Record(ctx context.Context, userID string, day time.Time) error {
	return m.Called(ctx, userID, day).Error(0)
}

func (m *MockLoginDayRepo) ListRecent(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type MockVoteRepo struct {
	mock.Mock
}

func (m *MockVoteRepo) Upsert(ctx context.Context, vote *domain.ModuleVote) error {
	return m.Called(ctx, vote).Error(0)
}

func (m *MockVoteRepo) Delete(ctx context.Context, userID, moduleID string) error {
	return m.Called(ctx, userID, moduleID).Error(0)
}

func (m *MockVoteRepo) ListByModule(ctx context.Context, moduleID string) ([]domain.ModuleVote, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ModuleVote), args.Error(1)
}

type recordingRecomputer struct {
	mu   sync.Mutex
	jobs [][2]string
}

func (r *recordingRecomputer) Enqueue(userID, moduleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, [2]string{userID, moduleID})
}
