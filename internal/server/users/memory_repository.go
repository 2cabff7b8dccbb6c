package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcourses/internal/common"
	"github.com/google/uuid"
)

// InMemoryRepository keeps users in process memory. Email uniqueness is
// enforced under the same lock as the insert.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *InMemoryRepository) Insert(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateAccount
	}

	created := *user
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.byID[created.ID] = &created
	r.byEmail[created.Email] = created.ID

	out := created
	return &out, nil
}

func (r *InMemoryRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

func (r *InMemoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id string, upd ProfileUpdate) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	u.Name = upd.Name
	u.Date = upd.Date

	out := *u
	return &out, nil
}
