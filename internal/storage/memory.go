package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/koopa0/shortener/internal/model"
)

// Memory is an in-process fake implementing the full Store contract. It is
// used only by package tests across internal/linksvc, internal/redirectsvc,
// internal/historysvc, internal/httpapi and this package's own tests — the durable backend
// factory (factory.go) never constructs one, since SPEC_FULL.md names exactly
// three durable engines.
//
// Adapted from the teacher's original Memory backend: same RWMutex-guarded
// map and copy-on-read discipline, widened to the richer Link/AccessEvent
// contract.
type Memory struct {
	mu     sync.RWMutex
	links  map[string]*model.Link // keyed by code
	byID   map[int64]*model.Link
	events []*model.AccessEvent
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		links: make(map[string]*model.Link),
		byID:  make(map[int64]*model.Link),
	}
}

func (m *Memory) CreateLink(_ context.Context, link *model.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.Code]; exists {
		return model.ErrCodeTaken
	}
	cp := *link
	m.links[link.Code] = &cp
	m.byID[link.ID] = &cp
	return nil
}

func (m *Memory) GetByCode(_ context.Context, code string) (*model.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, exists := m.links[code]
	if !exists {
		return nil, model.ErrNotFound
	}
	cp := *link
	return &cp, nil
}

func (m *Memory) ListLinks(_ context.Context, filter model.LinkFilter, page model.Page) ([]*model.Link, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page = page.Normalize(model.SortByCreatedAt)
	var matched []*model.Link
	for _, link := range m.links {
		if filter.Code != "" && link.Code != filter.Code {
			continue
		}
		if filter.Status != nil && link.Status != *filter.Status {
			continue
		}
		if filter.OriginalURLLike != "" && !containsSubstring(link.OriginalURL, filter.OriginalURLLike) {
			continue
		}
		cp := *link
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := lessBy(matched[i], matched[j], page.SortBy)
		if page.Order == model.OrderAsc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func lessBy(a, b *model.Link, key model.SortKey) bool {
	switch key {
	case model.SortByID:
		return a.ID < b.ID
	case model.SortByCode:
		return a.Code < b.Code
	case model.SortByUpdatedAt:
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return len(substr) == 0
}

func (m *Memory) UpdateLink(_ context.Context, code string, patch model.LinkPatch) (*model.Link, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, exists := m.links[code]
	if !exists {
		return nil, model.ErrNotFound
	}
	if patch.OriginalURL != nil {
		link.OriginalURL = *patch.OriginalURL
	}
	if patch.Description != nil {
		link.Description = *patch.Description
	}
	if patch.Status != nil {
		link.Status = *patch.Status
	}
	link.UpdatedAt = time.Now()
	cp := *link
	return &cp, nil
}

func (m *Memory) DeleteLink(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, exists := m.links[code]
	if !exists {
		return model.ErrNotFound
	}
	delete(m.links, code)
	delete(m.byID, link.ID)
	return nil
}

func (m *Memory) DeleteLinks(_ context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, id := range ids {
		link, exists := m.byID[id]
		if !exists {
			continue
		}
		delete(m.byID, id)
		delete(m.links, link.Code)
		count++
	}
	return count, nil
}

func (m *Memory) InsertEvent(_ context.Context, event *model.AccessEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *event
	m.events = append(m.events, &cp)
	return nil
}

func (m *Memory) ListEvents(_ context.Context, filter model.EventFilter, page model.Page) ([]*model.AccessEvent, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	page = page.Normalize(model.SortByCreatedAt)
	var matched []*model.AccessEvent
	for _, e := range m.events {
		if filter.Code != "" && e.Code != filter.Code {
			continue
		}
		if filter.IP != "" && e.IP != filter.IP {
			continue
		}
		if !filter.DateFrom.IsZero() && e.AccessedAt.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && e.AccessedAt.After(filter.DateTo) {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		less := matched[i].CreatedAt.Before(matched[j].CreatedAt)
		if page.Order == model.OrderAsc {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *Memory) DeleteEvents(_ context.Context, ids []int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idSet := make(map[int64]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var kept []*model.AccessEvent
	var count int64
	for _, e := range m.events {
		if idSet[e.ID] {
			count++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return count, nil
}

func (m *Memory) Close() error { return nil }
