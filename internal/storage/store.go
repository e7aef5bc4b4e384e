// Package storage implements the durable Store contract for links and access
// events across three gorm-backed SQL engines (sqlite, postgres, mysql). All
// three share one CRUD core (core.go); backend files differ only in dialector
// construction and connection pool tuning.
package storage

import (
	"context"

	"github.com/koopa0/shortener/internal/model"
)

// Store is the single abstract contract every backend satisfies. Callers
// above this package never see which SQL engine is in play.
type Store interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetByCode(ctx context.Context, code string) (*model.Link, error)
	ListLinks(ctx context.Context, filter model.LinkFilter, page model.Page) ([]*model.Link, int64, error)
	UpdateLink(ctx context.Context, code string, patch model.LinkPatch) (*model.Link, error)
	DeleteLink(ctx context.Context, code string) error
	DeleteLinks(ctx context.Context, ids []int64) (int64, error)

	InsertEvent(ctx context.Context, event *model.AccessEvent) error
	ListEvents(ctx context.Context, filter model.EventFilter, page model.Page) ([]*model.AccessEvent, int64, error)
	DeleteEvents(ctx context.Context, ids []int64) (int64, error)

	Close() error
}
