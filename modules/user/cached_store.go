package user

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/kuba-04/task-manager-rest-demo/domain/page"
	domain "github.com/kuba-04/task-manager-rest-demo/domain/user"
	"golang.org/x/sync/singleflight"
)

// LookupCache is the part of the cache used by CachedStore.
type LookupCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// cachedUser is the cached form of a user.
type cachedUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type lookupResult struct {
	user  *domain.User
	found bool
}

// generationStripes is the number of invalidation counters shared by all keys.
const generationStripes = 256

// CachedStore wraps a Store with cache-aside reads by id. Only hits are
// cached; writes invalidate the entry. Cache failures fall through to the store.
//
// Every invalidation bumps a per-key generation before deleting the entry. A
// read that filled the cache while the generation moved drops what it wrote,
// so a lookup racing a delete cannot bring the user back.
type CachedStore struct {
	store       Store
	cache       LookupCache
	sfGroup     singleflight.Group
	generations [generationStripes]atomic.Uint64
}

// NewCachedStore decorates store with cache.
func NewCachedStore(store Store, cache LookupCache) *CachedStore {
	return &CachedStore{store: store, cache: cache}
}

// Save writes through to the store and drops the cached entry.
func (s *CachedStore) Save(ctx context.Context, u *domain.User) error {
	if err := s.store.Save(ctx, u); err != nil {
		return err
	}
	s.invalidate(ctx, u.ID())
	return nil
}

// DeleteByID deletes from the store and drops the cached entry.
func (s *CachedStore) DeleteByID(ctx context.Context, id domain.ID) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// FindByID reads through the cache.
func (s *CachedStore) FindByID(ctx context.Context, id domain.ID) (*domain.User, bool, error) {
	key := id.String()

	var cached cachedUser
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[user] Cache error for ID=%s: %v", key, err)
	}
	if hit {
		u, err := cached.toDomain()
		if err == nil {
			return u, true, nil
		}
		log.Printf("[user] Discarding cached entry for ID=%s: %v", key, err)
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		gen := s.generation(key).Load()
		u, found, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			s.fill(ctx, key, gen, u)
		}
		return lookupResult{user: u, found: found}, nil
	})
	if err != nil {
		return nil, false, err
	}

	res := val.(lookupResult)
	return res.user, res.found, nil
}

// ExistsByID always asks the store. Assignment checks must not accept a user
// that was deleted while a stale entry was still cached.
func (s *CachedStore) ExistsByID(ctx context.Context, id domain.ID) (bool, error) {
	return s.store.ExistsByID(ctx, id)
}

// FindBySearchParams is not cached.
func (s *CachedStore) FindBySearchParams(ctx context.Context, params SearchParams, req page.Request) (page.Page[*domain.User], error) {
	return s.store.FindBySearchParams(ctx, params, req)
}

// fill caches u unless key was invalidated after gen was read.
func (s *CachedStore) fill(ctx context.Context, key string, gen uint64, u *domain.User) {
	if err := s.cache.Set(ctx, key, toCachedUser(u)); err != nil {
		log.Printf("[user] Warning: failed to cache user ID=%s: %v", key, err)
		return
	}
	if s.generation(key).Load() == gen {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[user] Warning: failed to drop stale cache entry for ID=%s: %v", key, err)
	}
}

func (s *CachedStore) generation(key string) *atomic.Uint64 {
	return &s.generations[xxhash.Sum64String(key)%generationStripes]
}

func (s *CachedStore) invalidate(ctx context.Context, id domain.ID) {
	s.generation(id.String()).Add(1)
	if err := s.cache.Delete(ctx, id.String()); err != nil {
		log.Printf("[user] Warning: failed to invalidate cache for ID=%s: %v", id, err)
	}
}

func toCachedUser(u *domain.User) cachedUser {
	return cachedUser{
		ID:        u.ID().String(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Email:     u.Email(),
	}
}

func (c cachedUser) toDomain() (*domain.User, error) {
	id, err := domain.ParseID(c.ID)
	if err != nil {
		return nil, err
	}
	return domain.New(id, c.FirstName, c.LastName, c.Email)
}
