package core

import (
	"context"
	"sync"

	"operation-theta/internal/db"
	"operation-theta/internal/events"
	"operation-theta/internal/models"
)

// memoryMissionRepo is an in-memory MissionRepository whose AddCompletion is
// atomic under a single mutex, like the Firestore transaction it stands in for.
type memoryMissionRepo struct {
	mu       sync.Mutex
	missions map[string]*models.Mission
	order    []string
	listErr  error
	addErr   error
}

func newMemoryMissionRepo(missions ...*models.Mission) *memoryMissionRepo {
	r := &memoryMissionRepo{missions: make(map[string]*models.Mission)}
	for _, m := range missions {
		r.put(m)
	}
	return r
}

func (r *memoryMissionRepo) put(m *models.Mission) {
	if _, ok := r.missions[m.ID]; !ok {
		r.order = append(r.order, m.ID)
	}
	c := *m
	c.CompletedBy = append([]string{}, m.CompletedBy...)
	r.missions[m.ID] = &c
}

func (r *memoryMissionRepo) List(_ context.Context) ([]*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.Mission, 0, len(r.order))
	for _, id := range r.order {
		c := *r.missions[id]
		c.CompletedBy = append([]string{}, c.CompletedBy...)
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryMissionRepo) GetByID(_ context.Context, missionID string) (*models.Mission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	m, ok := r.missions[missionID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *m
	c.CompletedBy = append([]string{}, m.CompletedBy...)
	return &c, nil
}

func (r *memoryMissionRepo) AddCompletion(_ context.Context, missionID, identifier string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return false, r.addErr
	}
	m, ok := r.missions[missionID]
	if !ok {
		return false, db.ErrNotFound
	}
	if m.CompletedByUser(identifier) {
		return true, nil
	}
	m.CompletedBy = append(m.CompletedBy, identifier)
	return false, nil
}

func (r *memoryMissionRepo) Upsert(_ context.Context, mission *models.Mission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ledger := []string{}
	if existing, ok := r.missions[mission.ID]; ok {
		ledger = existing.CompletedBy
	}
	r.put(mission)
	r.missions[mission.ID].CompletedBy = ledger
	return nil
}

func (r *memoryMissionRepo) ledger(missionID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.missions[missionID].CompletedBy...)
}

type memoryUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	listErr   error
	getErr    error
	createErr error
}

func newMemoryUserRepo(users ...*models.User) *memoryUserRepo {
	r := &memoryUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		c := *u
		r.users[u.ID] = &c
	}
	return r
}

func (r *memoryUserRepo) GetByID(_ context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *memoryUserRepo) List(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.ID]; ok {
		return db.ErrAlreadyExists
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return db.ErrNotFound
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

type memoryActivityRepo struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
	err     error
}

func (r *memoryActivityRepo) Create(_ context.Context, entry models.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryActivityRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CompletionEvent
	err    error
}

func (p *recordingPublisher) PublishCompletion(_ context.Context, event events.CompletionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []events.CompletionEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.CompletionEvent{}, p.events...)
}
