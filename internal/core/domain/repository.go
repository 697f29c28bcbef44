package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrModuleNotFound     = errors.New("module not found")
	ErrContentNotInModule = errors.New("content does not belong to module")
	ErrInvalidModuleID    = errors.New("invalid module id")
	ErrInvalidContentID   = errors.New("invalid content id")
	ErrInvalidVote        = errors.New("invalid vote (must be -1, 0 or 1)")
	ErrInvalidDay         = errors.New("invalid calendar day")
	ErrVoteConflict       = errors.New("module vote conflict")
	ErrProgressNotFound   = errors.New("progress record not found")
	ErrTooManyModules     = errors.New("too many module ids in one request")
)

type MembershipRepository interface {
	// ListByModuleIDs returns every (module, content) row of the given modules.
	// Rows may repeat; callers dedupe.
	ListByModuleIDs(ctx context.Context, moduleIDs []string) ([]ModuleMembership, error)
}

type CompletionRepository interface {
	// ListByUserAndModuleIDs returns the user's completion rows for the given modules.
	ListByUserAndModuleIDs(ctx context.Context, userID string, moduleIDs []string) ([]CompletionRecord, error)

	// Upsert creates or replaces the completion row of (user, module, content).
	Upsert(ctx context.Context, userID string, record CompletionRecord) error

	// CountCompleted counts the user's rows marked completed.
	CountCompleted(ctx context.Context, userID string) (int, error)
}

type ProgressRecordRepository interface {
	ListModuleProgress(ctx context.Context, userID string, moduleIDs []string) ([]ModuleProgressRecord, error)

	// ListModuleProgressByUser returns every module the user has started.
	ListModuleProgressByUser(ctx context.Context, userID string) ([]ModuleProgressRecord, error)

	// GetModuleProgress returns ErrProgressNotFound when the user never made progress on the module.
	GetModuleProgress(ctx context.Context, userID, moduleID string) (*ModuleProgressRecord, error)

	UpsertModuleProgress(ctx context.Context, record *ModuleProgressRecord) error

	ListTrackProgressByUser(ctx context.Context, userID string) ([]TrackProgressRecord, error)

	GetTrackProgress(ctx context.Context, userID, trackID string) (*TrackProgressRecord, error)

	UpsertTrackProgress(ctx context.Context, record *TrackProgressRecord) error
}

type TrackRepository interface {
	// ListTrackIDsByModule returns the tracks that contain the module.
	ListTrackIDsByModule(ctx context.Context, moduleID string) ([]string, error)

	// ListModuleIDs returns the modules of a track in track order.
	ListModuleIDs(ctx context.Context, trackID string) ([]string, error)
}

type LoginDayRepository interface {
	// Record stores the day for the user. Recording the same day twice is a no-op.
	Record(ctx context.Context, userID string, day time.Time) error

	// ListRecent returns at most limit days, most recent first.
	ListRecent(ctx context.Context, userID string, limit int) ([]time.Time, error)
}

type VoteRepository interface {
	// Upsert creates the user's vote on the module or replaces its value.
	Upsert(ctx context.Context, vote *ModuleVote) error

	Delete(ctx context.Context, userID, moduleID string) error

	ListByModule(ctx context.Context, moduleID string) ([]ModuleVote, error)
}

type UserRepository interface {
	// Ensure stores the user unless one with the same id already exists.
	Ensure(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}
