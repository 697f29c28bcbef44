package domain

import (
	"context"
	"time"
)

// ProgressChanged is emitted after a module's progress for a user has been recomputed.
type ProgressChanged struct {
	UserID     string             `json:"userId"`
	ModuleID   string             `json:"moduleId"`
	Progress   ModuleProgressInfo `json:"progress"`
	TrackIDs   []string           `json:"trackIds,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

type ProgressNotifier interface {
	Notify(ctx context.Context, event ProgressChanged) error
}

// ProgressSubscriber streams the ProgressChanged events of one user until
// the returned cancel func is called or ctx ends.
type ProgressSubscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan ProgressChanged, func(), error)
}
