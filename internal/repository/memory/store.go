// Package memory is the mock-mode data access layer: process-local collections seeded with
// fixed sample records. It satisfies the same repository interfaces as the GORM store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

// Store holds every mock collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	now       func() time.Time
	projects  []model.Project
	products  []model.Product
	inquiries []model.Inquiry
	profiles  map[string]model.Profile
	users     map[string]model.User
}

// NewStore returns an empty store. Use NewSeededStore for the sample data set.
func NewStore() *Store {
	return &Store{
		now:      time.Now,
		profiles: map[string]model.Profile{},
		users:    map[string]model.User{},
	}
}

// Projects exposes the store as a ProjectRepository.
func (s *Store) Projects() repository.ProjectRepository { return projectRepo{s} }

// Products exposes the store as a ProductRepository.
func (s *Store) Products() repository.ProductRepository { return productRepo{s} }

// Inquiries exposes the store as an InquiryRepository.
func (s *Store) Inquiries() repository.InquiryRepository { return inquiryRepo{s} }

// Profiles exposes the store as a ProfileRepository.
func (s *Store) Profiles() repository.ProfileRepository { return profileRepo{s} }

// Users exposes the store as a UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (s *Store) stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = s.now()
	}
}

// newestFirst orders by created_at descending; equal timestamps keep insertion order
// (newest inserted first).
func newestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return createdAt(out[i]).After(createdAt(out[j]))
	})
	return out
}

type projectRepo struct{ s *Store }

func (r projectRepo) Create(_ context.Context, p *model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.ID, &p.CreatedAt)
	r.s.projects = append([]model.Project{*p}, r.s.projects...)
	return nil
}

func (r projectRepo) List(_ context.Context) ([]model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.projects, func(p model.Project) time.Time { return p.CreatedAt }), nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.projects {
		if p.ID == id {
			r.s.projects = append(r.s.projects[:i], r.s.projects[i+1:]...)
			break
		}
	}
	return nil
}

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.ID, &p.CreatedAt)
	r.s.products = append([]model.Product{*p}, r.s.products...)
	return nil
}

func (r productRepo) List(_ context.Context) ([]model.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.products, func(p model.Product) time.Time { return p.CreatedAt }), nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.products {
		if p.ID == id {
			r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
			break
		}
	}
	return nil
}

type inquiryRepo struct{ s *Store }

func (r inquiryRepo) Create(_ context.Context, inq *model.Inquiry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&inq.ID, &inq.CreatedAt)
	r.s.inquiries = append([]model.Inquiry{*inq}, r.s.inquiries...)
	return nil
}

func (r inquiryRepo) List(_ context.Context) ([]model.Inquiry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return newestFirst(r.s.inquiries, func(i model.Inquiry) time.Time { return i.CreatedAt }), nil
}

type profileRepo struct{ s *Store }

func (r profileRepo) Create(_ context.Context, p *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now()
	}
	p.UpdatedAt = p.CreatedAt
	r.s.profiles[p.ID] = *p
	return nil
}

func (r profileRepo) FindByID(_ context.Context, id string) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r profileRepo) FindOwner(_ context.Context) (*model.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var owner *model.Profile
	for _, p := range r.s.profiles {
		p := p
		if owner == nil || p.CreatedAt.Before(owner.CreatedAt) {
			owner = &p
		}
	}
	if owner == nil {
		return nil, apperrors.ErrNotFound
	}
	return owner, nil
}

func (r profileRepo) Update(_ context.Context, id string, update model.ProfileUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil
	}
	update.Apply(&p)
	p.UpdatedAt = r.s.now()
	r.s.profiles[id] = p
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&u.ID, &u.CreatedAt)
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
