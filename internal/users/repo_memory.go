package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Create(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; ok {
		return ErrEmailTaken
	}
	if r.emailOwnerLocked(profile.Email) != "" {
		return ErrEmailTaken
	}
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.ID] = profile
	return nil
}

// Upsert keeps the stored password hash and username when the incoming
// profile leaves them empty.
func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner := r.emailOwnerLocked(profile.Email); owner != "" && owner != profile.ID {
		return ErrEmailTaken
	}
	now := time.Now().UTC()
	existing, ok := r.profiles[profile.ID]
	if ok {
		profile.CreatedAt = existing.CreatedAt
		if profile.PasswordHash == "" {
			profile.PasswordHash = existing.PasswordHash
		}
		if profile.Username == "" {
			profile.Username = existing.Username
		}
		if existing.DisplayName != "" {
			profile.DisplayName = existing.DisplayName
		}
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.ID] = profile
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := r.emailOwnerLocked(email)
	if id == "" {
		return Profile{}, ErrNotFound
	}
	return r.profiles[id], nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	if update.Username != "" {
		for otherID, other := range r.profiles {
			if otherID != id && strings.EqualFold(other.Username, update.Username) {
				return Profile{}, ErrUsernameTaken
			}
		}
	}
	profile.DisplayName = update.DisplayName
	profile.Username = update.Username
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[id] = profile
	return profile, nil
}

func (r *MemoryRepo) emailOwnerLocked(email string) string {
	for id, p := range r.profiles {
		if strings.EqualFold(p.Email, email) {
			return id
		}
	}
	return ""
}
