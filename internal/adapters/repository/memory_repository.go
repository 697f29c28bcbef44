package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
)

// InMemoryCatalog holds module contents and track layouts. It is seeded at
// startup and read-only afterwards.
type InMemoryCatalog struct {
	modules map[string][]string
	tracks  map[string][]string

	mu sync.RWMutex
}

func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		modules: make(map[string][]string),
		tracks:  make(map[string][]string),
	}
}

func (r *InMemoryCatalog) AddModuleContents(ctx context.Context, moduleID string, contentIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[moduleID] = append(r.modules[moduleID], contentIDs...)
	return nil
}

func (r *InMemoryCatalog) AddTrackModules(ctx context.Context, trackID string, moduleIDs ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracks[trackID] = append(r.tracks[trackID], moduleIDs...)
	return nil
}

func (r *InMemoryCatalog) ListByModuleIDs(ctx context.Context, moduleIDs []string) ([]domain.ModuleMembership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rows []domain.ModuleMembership
	for _, moduleID := range moduleIDs {
		for _, contentID := range r.modules[moduleID] {
			rows = append(rows, domain.ModuleMembership{ModuleID: moduleID, ContentID: contentID})
		}
	}
	return rows, nil
}

func (r *InMemoryCatalog) ListTrackIDsByModule(ctx context.Context, moduleID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for trackID, modules := range r.tracks {
		for _, m := range modules {
			if m == moduleID {
				ids = append(ids, trackID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *InMemoryCatalog) ListModuleIDs(ctx context.Context, trackID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.tracks[trackID]...), nil
}

type completionKey struct {
	userID    string
	moduleID  string
	contentID string
}

type progressKey struct {
	userID string
	id     string
}

// InMemoryProgressRepository stores completions and the derived module and
// track records. Records are copied in and out.
type InMemoryProgressRepository struct {
	completions map[completionKey]bool
	modules     map[progressKey]domain.ModuleProgressRecord
	tracks      map[progressKey]domain.TrackProgressRecord

	mu sync.RWMutex
}

func NewInMemoryProgressRepository() *InMemoryProgressRepository {
	return &InMemoryProgressRepository{
		completions: make(map[completionKey]bool),
		modules:     make(map[progressKey]domain.ModuleProgressRecord),
		tracks:      make(map[progressKey]domain.TrackProgressRecord),
	}
}

func (r *InMemoryProgressRepository) ListByUserAndModuleIDs(ctx context.Context, userID string, moduleIDs []string) ([]domain.CompletionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		wanted[id] = true
	}

	var rows []domain.CompletionRecord
	for k, done := range r.completions {
		if k.userID == userID && wanted[k.moduleID] {
			rows = append(rows, domain.CompletionRecord{ModuleID: k.moduleID, ContentID: k.contentID, IsCompleted: done})
		}
	}
	return rows, nil
}

func (r *InMemoryProgressRepository) Upsert(ctx context.Context, userID string, record domain.CompletionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completions[completionKey{userID, record.ModuleID, record.ContentID}] = record.IsCompleted
	return nil
}

func (r *InMemoryProgressRepository) CountCompleted(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for k, done := range r.completions {
		if k.userID == userID && done {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryProgressRepository) ListModuleProgress(ctx context.Context, userID string, moduleIDs []string) ([]domain.ModuleProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []domain.ModuleProgressRecord
	for _, id := range moduleIDs {
		if rec, ok := r.modules[progressKey{userID, id}]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *InMemoryProgressRepository) ListModuleProgressByUser(ctx context.Context, userID string) ([]domain.ModuleProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []domain.ModuleProgressRecord
	for k, rec := range r.modules {
		if k.userID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ModuleID < records[j].ModuleID
	})
	return records, nil
}

func (r *InMemoryProgressRepository) GetModuleProgress(ctx context.Context, userID, moduleID string) (*domain.ModuleProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.modules[progressKey{userID, moduleID}]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	return &rec, nil
}

func (r *InMemoryProgressRepository) UpsertModuleProgress(ctx context.Context, record *domain.ModuleProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.modules[progressKey{record.UserID, record.ModuleID}] = *record
	return nil
}

func (r *InMemoryProgressRepository) ListTrackProgressByUser(ctx context.Context, userID string) ([]domain.TrackProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []domain.TrackProgressRecord
	for k, rec := range r.tracks {
		if k.userID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].TrackID < records[j].TrackID
	})
	return records, nil
}

func (r *InMemoryProgressRepository) GetTrackProgress(ctx context.Context, userID, trackID string) (*domain.TrackProgressRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.tracks[progressKey{userID, trackID}]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	return &rec, nil
}

func (r *InMemoryProgressRepository) UpsertTrackProgress(ctx context.Context, record *domain.TrackProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tracks[progressKey{record.UserID, record.TrackID}] = *record
	return nil
}

type InMemoryLoginDayRepository struct {
	days map[string]map[string]time.Time

	mu sync.RWMutex
}

func NewInMemoryLoginDayRepository() *InMemoryLoginDayRepository {
	return &InMemoryLoginDayRepository{
		days: make(map[string]map[string]time.Time),
	}
}

func (r *InMemoryLoginDayRepository) Record(ctx context.Context, userID string, day time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	day = domain.CalendarDay(day)
	if r.days[userID] == nil {
		r.days[userID] = make(map[string]time.Time)
	}
	r.days[userID][day.Format(domain.DayLayout)] = day
	return nil
}

func (r *InMemoryLoginDayRepository) ListRecent(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	days := make([]time.Time, 0, len(r.days[userID]))
	for _, d := range r.days[userID] {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	return days, nil
}

type InMemoryVoteRepository struct {
	votes map[progressKey]domain.ModuleVote

	mu sync.RWMutex
}

func NewInMemoryVoteRepository() *InMemoryVoteRepository {
	return &InMemoryVoteRepository{
		votes: make(map[progressKey]domain.ModuleVote),
	}
}

func (r *InMemoryVoteRepository) Upsert(ctx context.Context, vote *domain.ModuleVote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey{vote.UserID, vote.ModuleID}
	if existing, ok := r.votes[key]; ok {
		existing.Value = vote.Value
		existing.UpdatedAt = vote.UpdatedAt
		r.votes[key] = existing
		return nil
	}
	r.votes[key] = *vote
	return nil
}

func (r *InMemoryVoteRepository) Delete(ctx context.Context, userID, moduleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.votes, progressKey{userID, moduleID})
	return nil
}

func (r *InMemoryVoteRepository) ListByModule(ctx context.Context, moduleID string) ([]domain.ModuleVote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var votes []domain.ModuleVote
	for k, v := range r.votes {
		if k.id == moduleID {
			votes = append(votes, v)
		}
	}
	return votes, nil
}

type InMemoryUserRepository struct {
	byID map[string]domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]domain.User),
	}
}

func (r *InMemoryUserRepository) Ensure(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		r.byID[user.ID] = *user
	}
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}
