package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/koopa0/shortener/internal/model"
	"gorm.io/gorm"
)

// gormStore implements Store against a *gorm.DB. Every backend (sqlite,
// postgres, mysql) constructs one of these around its own dialector and pool
// settings; the CRUD logic below is written exactly once.
type gormStore struct {
	db *gorm.DB
}

func newGormStore(db *gorm.DB) (*gormStore, error) {
	if err := db.AutoMigrate(&linkRow{}, &eventRow{}); err != nil {
		return nil, fmt.Errorf("storage: automigrate: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) CreateLink(ctx context.Context, link *model.Link) error {
	row := linkRowFromDomain(link)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			return model.ErrCodeTaken
		}
		return fmt.Errorf("%w: create link: %w", model.ErrStorage, err)
	}
	*link = *row.toDomain()
	return nil
}

func (s *gormStore) GetByCode(ctx context.Context, code string) (*model.Link, error) {
	var row linkRow
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get by code: %w", model.ErrStorage, err)
	}
	return row.toDomain(), nil
}

func (s *gormStore) ListLinks(ctx context.Context, filter model.LinkFilter, page model.Page) ([]*model.Link, int64, error) {
	page = page.Normalize(model.SortByCreatedAt)
	q := s.db.WithContext(ctx).Model(&linkRow{})
	q = applyLinkFilter(q, filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count links: %w", model.ErrStorage, err)
	}

	var rows []linkRow
	q = q.Order(orderClause(string(page.SortBy), string(page.Order))).
		Limit(page.PerPage).Offset(page.Offset())
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: list links: %w", model.ErrStorage, err)
	}

	out := make([]*model.Link, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, total, nil
}

func applyLinkFilter(q *gorm.DB, filter model.LinkFilter) *gorm.DB {
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if filter.OriginalURLLike != "" {
		q = q.Where("original_url LIKE ?", "%"+filter.OriginalURLLike+"%")
	}
	if filter.Status != nil {
		q = q.Where("status = ?", int(*filter.Status))
	}
	return q
}

func orderClause(sortBy, order string) string {
	switch model.SortKey(sortBy) {
	case model.SortByID, model.SortByCreatedAt, model.SortByUpdatedAt, model.SortByCode:
	default:
		sortBy = string(model.SortByCreatedAt)
	}
	dir := "DESC"
	if model.SortOrder(order) == model.OrderAsc {
		dir = "ASC"
	}
	// id is always appended as a deterministic tiebreaker (SPEC_FULL.md §4.2).
	if sortBy == string(model.SortByID) {
		return fmt.Sprintf("id %s", dir)
	}
	return fmt.Sprintf("%s %s, id %s", sortBy, dir, dir)
}

func (s *gormStore) UpdateLink(ctx context.Context, code string, patch model.LinkPatch) (*model.Link, error) {
	updates := map[string]any{}
	if patch.OriginalURL != nil {
		updates["original_url"] = *patch.OriginalURL
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = int(*patch.Status)
	}

	res := s.db.WithContext(ctx).Model(&linkRow{}).
		Where("code = ?", code).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: update link: %w", model.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}
	return s.GetByCode(ctx, code)
}

func (s *gormStore) DeleteLink(ctx context.Context, code string) error {
	res := s.db.WithContext(ctx).Where("code = ?", code).Delete(&linkRow{})
	if res.Error != nil {
		return fmt.Errorf("%w: delete link: %w", model.ErrStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteLinks(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&linkRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: delete links: %w", model.ErrStorage, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) InsertEvent(ctx context.Context, event *model.AccessEvent) error {
	row := eventRowFromDomain(event)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("%w: insert event: %w", model.ErrStorage, err)
	}
	*event = *row.toDomain()
	return nil
}

func (s *gormStore) ListEvents(ctx context.Context, filter model.EventFilter, page model.Page) ([]*model.AccessEvent, int64, error) {
	page = page.Normalize(model.SortByCreatedAt)
	if page.SortBy == model.SortByUpdatedAt {
		// access_events has no updated_at column; rows are never updated.
		page.SortBy = model.SortByCreatedAt
	}
	q := s.db.WithContext(ctx).Model(&eventRow{})
	if filter.Code != "" {
		q = q.Where("code = ?", filter.Code)
	}
	if filter.IP != "" {
		q = q.Where("ip = ?", filter.IP)
	}
	if !filter.DateFrom.IsZero() {
		q = q.Where("accessed_at >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		q = q.Where("accessed_at <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: count events: %w", model.ErrStorage, err)
	}

	var rows []eventRow
	q = q.Order(orderClause(string(page.SortBy), string(page.Order))).
		Limit(page.PerPage).Offset(page.Offset())
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: list events: %w", model.ErrStorage, err)
	}

	out := make([]*model.AccessEvent, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, total, nil
}

func (s *gormStore) DeleteEvents(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("id IN ?", ids).Delete(&eventRow{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: delete events: %w", model.ErrStorage, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
