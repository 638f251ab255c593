package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/eventfeed/eventfeed-api/internal/domain/entity"
	repo "github.com/eventfeed/eventfeed-api/internal/domain/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*entity.User
	next  int
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{} }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	u.ID = fmt.Sprintf("u-%d", r.next)
	u.CreatedAt = time.Now().UTC()
	cp := *u
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type storedEvent struct {
	entity.Event
	seq int
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []storedEvent
	owners map[string]entity.EventOwner
	seq    int

	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{owners: map[string]entity.EventOwner{}}
}

func (r *fakeEventRepo) setOwner(userID, username, profileImage string) {
	r.owners[userID] = entity.EventOwner{Username: username, ProfileImage: profileImage}
}

func (r *fakeEventRepo) Create(_ context.Context, e *entity.Event) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.events = append(r.events, storedEvent{Event: *e, seq: r.seq})
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, se := range r.events {
		if se.ID == id {
			cp := se.Event
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

// sorted returns events newest first, later insertions first on timestamp ties,
// matching the SQL ORDER BY created_at DESC, id DESC with time-ordered ids.
func (r *fakeEventRepo) sorted() []storedEvent {
	out := make([]storedEvent, len(r.events))
	copy(out, r.events)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].seq > out[j].seq
	})
	return out
}

func (r *fakeEventRepo) List(_ context.Context, offset, limit int) ([]entity.FeedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted()
	items := make([]entity.FeedEvent, 0, limit)
	for i := offset; i < len(all) && len(items) < limit; i++ {
		items = append(items, entity.FeedEvent{Event: all[i].Event, Owner: r.owners[all[i].UserID]})
	}
	return items, nil
}

func (r *fakeEventRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events), nil
}

func (r *fakeEventRepo) ListByOwner(_ context.Context, userID string) ([]entity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.Event
	for _, se := range r.sorted() {
		if se.UserID == userID {
			items = append(items, se.Event)
		}
	}
	return items, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, se := range r.events {
		if se.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

const fakeAssetPrefix = "https://storage.test/feed/"

type fakeAssetStore struct {
	mu         sync.Mutex
	uploadErr  error
	destroyErr error
	uploads    int
	destroyed  []string
}

func (s *fakeAssetStore) Upload(_ context.Context, payload string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	return fmt.Sprintf("%sobj-%d.jpg", fakeAssetPrefix, s.uploads), nil
}

func (s *fakeAssetStore) Destroy(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, url)
	return s.destroyErr
}

func (s *fakeAssetStore) IsManaged(url string) bool {
	return strings.HasPrefix(url, fakeAssetPrefix)
}

var errBoom = errors.New("boom")
