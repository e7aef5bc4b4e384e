// Package historysvc implements access-event query and bulk-delete,
// grounded on original_source/shortener-server/src/services/history_service.rs's
// list/delete shape, built directly over internal/storage.
package historysvc

import (
	"context"

	"github.com/koopa0/shortener/internal/model"
	"github.com/koopa0/shortener/internal/storage"
)

// Service implements the history business rules.
type Service struct {
	store storage.Store
}

// New builds a Service.
func New(store storage.Store) *Service {
	return &Service{store: store}
}

// List returns a page of access events matching filter.
func (s *Service) List(ctx context.Context, filter model.EventFilter, page model.Page) ([]*model.AccessEvent, int64, error) {
	return s.store.ListEvents(ctx, filter, page)
}

// DeleteMany removes the access events with the given ids.
func (s *Service) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	return s.store.DeleteEvents(ctx, ids)
}
