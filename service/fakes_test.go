package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-belief/domain"
	"github.com/google/uuid"
)

type memModelRepo struct {
	mu     sync.Mutex
	models map[uuid.UUID]*dmn.Model
	loads  int
}

func newMemModelRepo() *memModelRepo {
	return &memModelRepo{models: make(map[uuid.UUID]*dmn.Model)}
}

func (r *memModelRepo) Save(_ context.Context, m *dmn.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.ID] = m
	return nil
}

func (r *memModelRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Model, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	m, ok := r.models[id]
	if !ok {
		return nil, dmn.ErrNotFound
	}
	return m, nil
}

type memRunRepo struct {
	mu   sync.Mutex
	runs map[uuid.UUID]*dmn.Run
	err  error
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: make(map[uuid.UUID]*dmn.Run)}
}

func (r *memRunRepo) Save(_ context.Context, run *dmn.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.runs[run.ID] = run
	return nil
}

func (r *memRunRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, dmn.ErrNotFound
	}
	return run, nil
}

type memRunCache struct {
	mu      sync.Mutex
	runs    map[string]*dmn.Run
	locks   int
	lockErr error
}

func newMemRunCache() *memRunCache {
	return &memRunCache{runs: make(map[string]*dmn.Run)}
}

func (c *memRunCache) Get(_ context.Context, key string) (*dmn.Run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runs[key], nil
}

func (c *memRunCache) Set(_ context.Context, key string, run *dmn.Run) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs[key] = run
	return nil
}

func (c *memRunCache) Lock(_ context.Context, _ string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {}, nil
}

type memUserRepo struct {
	users map[string]*dmn.User
}

func (r *memUserRepo) Save(u *dmn.User) error {
	if _, ok := r.users[u.Username]; ok {
		return dmn.ErrUsernameConflict
	}
	r.users[u.Username] = u
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, dmn.ErrNotFound
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, dmn.ErrNotFound
	}
	return u, nil
}

type stubTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.claims, s.ttl = claims, ttl
	return "token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

type recordingLogger struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
