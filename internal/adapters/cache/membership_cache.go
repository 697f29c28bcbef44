package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-study-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

const DefaultMembershipTTL = 30 * time.Minute

var _ domain.MembershipRepository = (*CachedMembershipRepository)(nil)

// CachedMembershipRepository keeps the content list of each module in Redis.
// Redis failures fall through to the wrapped repository.
type CachedMembershipRepository struct {
	next  domain.MembershipRepository
	cache *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

func NewCachedMembershipRepository(next domain.MembershipRepository, cache *redis.Client, ttl time.Duration, log *logger.Logger) *CachedMembershipRepository {
	if ttl <= 0 {
		ttl = DefaultMembershipTTL
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedMembershipRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
		log:   log.With("component", "membership_cache"),
	}
}

func membershipKey(moduleID string) string {
	return fmt.Sprintf("module:contents:%s", moduleID)
}

func (r *CachedMembershipRepository) ListByModuleIDs(ctx context.Context, moduleIDs []string) ([]domain.ModuleMembership, error) {
	if len(moduleIDs) == 0 {
		return []domain.ModuleMembership{}, nil
	}

	keys := make([]string, len(moduleIDs))
	for i, id := range moduleIDs {
		keys[i] = membershipKey(id)
	}

	var rows []domain.ModuleMembership
	missing := make([]string, 0, len(moduleIDs))

	values, err := r.cache.MGet(ctx, keys...).Result()
	if err != nil {
		r.log.Warn("redis read error", "error", err)
		return r.next.ListByModuleIDs(ctx, moduleIDs)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			missing = append(missing, moduleIDs[i])
			continue
		}
		var contents []string
		if err := json.Unmarshal([]byte(raw), &contents); err != nil {
			r.log.Warn("corrupted cache entry, cleaning up key", "key", keys[i])
			r.cache.Del(ctx, keys[i])
			missing = append(missing, moduleIDs[i])
			continue
		}
		for _, contentID := range contents {
			rows = append(rows, domain.ModuleMembership{ModuleID: moduleIDs[i], ContentID: contentID})
		}
	}

	if len(missing) == 0 {
		return rows, nil
	}

	fetched, err := r.next.ListByModuleIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	rows = append(rows, fetched...)

	r.store(ctx, missing, fetched)
	return rows, nil
}

// Invalidate drops the cached content lists of the given modules.
func (r *CachedMembershipRepository) Invalidate(ctx context.Context, moduleIDs ...string) {
	if len(moduleIDs) == 0 {
		return
	}
	keys := make([]string, len(moduleIDs))
	for i, id := range moduleIDs {
		keys[i] = membershipKey(id)
	}
	if err := r.cache.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn("failed to invalidate modules", "modules", moduleIDs, "error", err)
	}
}

func (r *CachedMembershipRepository) store(ctx context.Context, moduleIDs []string, rows []domain.ModuleMembership) {
	byModule := make(map[string][]string, len(moduleIDs))
	for _, id := range moduleIDs {
		byModule[id] = []string{}
	}
	for _, row := range rows {
		if _, ok := byModule[row.ModuleID]; ok {
			byModule[row.ModuleID] = append(byModule[row.ModuleID], row.ContentID)
		}
	}

	pipe := r.cache.Pipeline()
	for id, contents := range byModule {
		data, err := json.Marshal(contents)
		if err != nil {
			continue
		}
		pipe.Set(ctx, membershipKey(id), data, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warn("redis set error", "error", err)
	}
}
