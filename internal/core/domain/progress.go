package domain

import (
	"math"
	"time"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

// ModuleMembership declares that a content item belongs to a module.
type ModuleMembership struct {
	ModuleID  string `json:"module_id" db:"module_id"`
	ContentID string `json:"content_id" db:"content_id"`
}

// CompletionRecord is the per-user completion marker of a content item inside a module.
type CompletionRecord struct {
	ModuleID    string `json:"module_id" db:"module_id"`
	ContentID   string `json:"content_id" db:"content_id"`
	IsCompleted bool   `json:"is_completed" db:"is_completed"`
}

type ModuleProgressInfo struct {
	ModuleID       string         `json:"moduleId"`
	CompletedCount int            `json:"completedCount"`
	TotalCount     int            `json:"totalCount"`
	Percentage     int            `json:"percentage"`
	Status         ProgressStatus `json:"status"`
}

func NewModuleProgressInfo(moduleID string, completed, total int) ModuleProgressInfo {
	info := ModuleProgressInfo{
		ModuleID:       moduleID,
		CompletedCount: completed,
		TotalCount:     total,
		Status:         StatusNotStarted,
	}

	if total > 0 {
		info.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}

	switch {
	case total > 0 && completed >= total:
		info.Status = StatusCompleted
	case completed > 0 && completed < total:
		info.Status = StatusInProgress
	}

	return info
}

// ComputeModuleProgress cross-references memberships and completions for the requested
// modules. Rows for other modules are ignored, duplicate rows collapse to distinct
// content ids, and a completion only counts when the same (module, content) pair is a
// membership. Every requested id gets an entry, even without any rows.
func ComputeModuleProgress(moduleIDs []string, memberships []ModuleMembership, completions []CompletionRecord) map[string]ModuleProgressInfo {
	result := make(map[string]ModuleProgressInfo, len(moduleIDs))
	if len(moduleIDs) == 0 {
		return result
	}

	contents := make(map[string]map[string]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		if _, ok := contents[id]; !ok {
			contents[id] = make(map[string]struct{})
		}
	}

	for _, m := range memberships {
		set, ok := contents[m.ModuleID]
		if !ok {
			continue
		}
		set[m.ContentID] = struct{}{}
	}

	completed := make(map[string]map[string]struct{}, len(moduleIDs))
	for _, c := range completions {
		if !c.IsCompleted {
			continue
		}
		set, ok := contents[c.ModuleID]
		if !ok {
			continue
		}
		if _, member := set[c.ContentID]; !member {
			continue
		}
		done, ok := completed[c.ModuleID]
		if !ok {
			done = make(map[string]struct{})
			completed[c.ModuleID] = done
		}
		done[c.ContentID] = struct{}{}
	}

	for _, id := range moduleIDs {
		result[id] = NewModuleProgressInfo(id, len(completed[id]), len(contents[id]))
	}

	return result
}

// ModuleProgressRecord is the persisted per-user state of a module.
type ModuleProgressRecord struct {
	UserID      string     `json:"user_id" db:"user_id"`
	ModuleID    string     `json:"module_id" db:"module_id"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (r ModuleProgressRecord) IsCompleted() bool {
	return r.CompletedAt != nil && !r.CompletedAt.IsZero()
}

// Apply moves the record to the state described by info at time now.
// StartedAt is set once and kept; CompletedAt follows the completion status.
func (r *ModuleProgressRecord) Apply(info ModuleProgressInfo, now time.Time) {
	if r.StartedAt.IsZero() {
		r.StartedAt = now
	}

	if info.Status == StatusCompleted {
		if !r.IsCompleted() {
			r.CompletedAt = &now
		}
	} else {
		r.CompletedAt = nil
	}

	r.UpdatedAt = now
}

// TrackProgressRecord is the persisted per-user state of a track.
type TrackProgressRecord struct {
	UserID      string     `json:"user_id" db:"user_id"`
	TrackID     string     `json:"track_id" db:"track_id"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func (r TrackProgressRecord) IsCompleted() bool {
	return r.CompletedAt != nil && !r.CompletedAt.IsZero()
}

// Apply records the track as started at now, and as completed when completed is true.
func (r *TrackProgressRecord) Apply(completed bool, now time.Time) {
	if r.StartedAt.IsZero() {
		r.StartedAt = now
	}

	if completed {
		if !r.IsCompleted() {
			r.CompletedAt = &now
		}
	} else {
		r.CompletedAt = nil
	}

	r.UpdatedAt = now
}

// IsTrackCompleted reports whether every module of the track has a completed record.
func IsTrackCompleted(trackModuleIDs []string, records []ModuleProgressRecord) bool {
	if len(trackModuleIDs) == 0 {
		return false
	}

	done := make(map[string]bool, len(records))
	for _, r := range records {
		if r.IsCompleted() {
			done[r.ModuleID] = true
		}
	}

	for _, id := range trackModuleIDs {
		if !done[id] {
			return false
		}
	}
	return true
}
