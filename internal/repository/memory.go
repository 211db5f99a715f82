package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/calc-hub/internal/models"
)

// Memory is an in-process Store for development and tests
type Memory struct {
	mu      sync.RWMutex
	users   map[string]models.User
	nextID  int64
	content map[models.Kind]map[string]models.ContentItem
}

// NewMemory returns an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]models.User),
		content: make(map[models.Kind]map[string]models.ContentItem),
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Email]; ok {
		return fmt.Errorf("failed to create user: email %s already exists", user.Email)
	}
	m.nextID++
	now := time.Now().UTC()
	user.ID = m.nextID
	user.CreatedAt, user.UpdatedAt = now, now
	m.users[user.Email] = *user
	return nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) ListContent(_ context.Context, kind models.Kind) ([]models.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]models.ContentItem, 0, len(m.content[kind]))
	for _, it := range m.content[kind] {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Position != items[j].Position {
			return items[i].Position < items[j].Position
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (m *Memory) GetContent(_ context.Context, kind models.Kind, id string) (*models.ContentItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, ok := m.content[kind][id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (m *Memory) AddContent(_ context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := m.content[item.Kind]
	if bucket == nil {
		bucket = make(map[string]models.ContentItem)
		m.content[item.Kind] = bucket
	}
	if _, ok := bucket[item.ID]; ok {
		return fmt.Errorf("failed to add %s: id %s already exists", item.Kind, item.ID)
	}
	if item.Position <= 0 {
		last := 0
		for _, it := range bucket {
			if it.Position > last {
				last = it.Position
			}
		}
		item.Position = last + 1
	}
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	bucket[item.ID] = *item
	return nil
}

func (m *Memory) UpdateContent(_ context.Context, item *models.ContentItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.content[item.Kind][item.ID]
	if !ok {
		return ErrNotFound
	}
	if item.Position <= 0 {
		item.Position = old.Position
	}
	item.CreatedAt = old.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	m.content[item.Kind][item.ID] = *item
	return nil
}

func (m *Memory) RemoveContent(_ context.Context, kind models.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.content[kind][id]; !ok {
		return ErrNotFound
	}
	delete(m.content[kind], id)
	return nil
}
