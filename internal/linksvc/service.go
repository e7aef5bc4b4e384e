// Package linksvc implements the link business rules: create, read, update,
// delete, and list, built over internal/codegen (C1), internal/storage (C2),
// and internal/cache (C3). It supersedes the teacher's internal/shortener
// package, which defined URL/Service twice (types.go and service.go
// redundantly) — this package keeps a single definition and widens the
// model to Link's richer field set (status, description) per SPEC_FULL.md §3.
package linksvc

import (
	"context"
	"fmt"
	"time"

	"github.com/koopa0/shortener/internal/cache"
	"github.com/koopa0/shortener/internal/codegen"
	"github.com/koopa0/shortener/internal/model"
	"github.com/koopa0/shortener/internal/storage"
	"github.com/koopa0/shortener/pkg/snowflake"
	"go.uber.org/zap"
)

// maxGenerateAttempts bounds the create-without-custom-code retry loop
// before CodeExhausted is returned (SPEC_FULL.md §4.5/§9).
const maxGenerateAttempts = 5

// Service implements the link business rules.
type Service struct {
	store   storage.Store
	cache   cache.Cache
	gen     *codegen.Generator
	idgen   *snowflake.Generator
	logger  *zap.Logger
}

// New builds a Service. gen validates and produces codes; idgen assigns the
// integer primary key (decoupled from code generation, see pkg/snowflake).
func New(store storage.Store, c cache.Cache, gen *codegen.Generator, idgen *snowflake.Generator, logger *zap.Logger) *Service {
	return &Service{store: store, cache: c, gen: gen, idgen: idgen, logger: logger}
}

// Create validates originalURL, allocates or validates a code, and persists
// the link. A non-empty customCode is used verbatim (after validation); an
// empty customCode triggers up to maxGenerateAttempts random draws, relying
// on the storage uniqueness constraint — never a pre-check — to detect
// collision (SPEC_FULL.md §9: pre-check would race).
func (s *Service) Create(ctx context.Context, originalURL, customCode, description string) (*model.Link, error) {
	if !isValidURL(originalURL) {
		return nil, model.ErrInvalidURL
	}

	now := time.Now()

	if customCode != "" {
		if !s.gen.IsValid(customCode) {
			return nil, model.ErrInvalidCode
		}
		id, err := s.idgen.Generate()
		if err != nil {
			return nil, fmt.Errorf("linksvc: generate id: %w", err)
		}
		link := &model.Link{
			ID: id, Code: customCode, OriginalURL: originalURL, Description: description,
			Status: model.StatusEnabled, CreatedAt: now, UpdatedAt: now,
		}
		if err := s.store.CreateLink(ctx, link); err != nil {
			return nil, err
		}
		s.populateCache(ctx, link)
		return link, nil
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("linksvc: generate code: %w", err)
		}
		id, err := s.idgen.Generate()
		if err != nil {
			return nil, fmt.Errorf("linksvc: generate id: %w", err)
		}
		link := &model.Link{
			ID: id, Code: code, OriginalURL: originalURL, Description: description,
			Status: model.StatusEnabled, CreatedAt: now, UpdatedAt: now,
		}
		err = s.store.CreateLink(ctx, link)
		if err == nil {
			s.populateCache(ctx, link)
			return link, nil
		}
		if err != model.ErrCodeTaken {
			return nil, err
		}
		s.logger.Warn("code generation collision, retrying", zap.String("code", code), zap.Int("attempt", attempt))
	}
	return nil, model.ErrCodeExhausted
}

func (s *Service) populateCache(ctx context.Context, link *model.Link) {
	if err := s.cache.Set(ctx, link, 0); err != nil {
		s.logger.Warn("cache populate failed", zap.Error(err))
	}
}

// Get resolves a code via the cache, falling through to storage on miss.
func (s *Service) Get(ctx context.Context, code string) (*model.Link, error) {
	if cached, found, err := s.cache.Get(ctx, code); err == nil && found {
		if cached == nil {
			return nil, model.ErrNotFound
		}
		return cached, nil
	}

	link, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if err == model.ErrNotFound {
			if setErr := s.cache.SetAbsent(ctx, code); setErr != nil {
				s.logger.Warn("cache negative-set failed", zap.Error(setErr))
			}
		}
		return nil, err
	}
	s.populateCache(ctx, link)
	return link, nil
}

// List delegates to storage; the cache is never consulted for list queries.
func (s *Service) List(ctx context.Context, filter model.LinkFilter, page model.Page) ([]*model.Link, int64, error) {
	return s.store.ListLinks(ctx, filter, page)
}

// Update applies patch to the link identified by code. code itself is
// immutable through this path (SPEC_FULL.md §9 Open Question decision).
func (s *Service) Update(ctx context.Context, code string, patch model.LinkPatch) (*model.Link, error) {
	if patch.OriginalURL != nil && !isValidURL(*patch.OriginalURL) {
		return nil, model.ErrInvalidURL
	}
	link, err := s.store.UpdateLink(ctx, code, patch)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Del(ctx, code); err != nil {
		s.logger.Warn("cache invalidate failed", zap.Error(err))
	}
	s.populateCache(ctx, link)
	return link, nil
}

// Delete removes the link identified by code and invalidates its cache entry.
func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.store.DeleteLink(ctx, code); err != nil {
		return err
	}
	if err := s.cache.Del(ctx, code); err != nil {
		s.logger.Warn("cache invalidate failed", zap.Error(err))
	}
	return nil
}

// DeleteMany removes the links with the given ids. It first loads their
// codes so the cache entries can be invalidated precisely rather than left
// to expire by TTL (SPEC_FULL.md §4.5's documented choice).
func (s *Service) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	codes := s.lookupCodes(ctx, ids)

	count, err := s.store.DeleteLinks(ctx, ids)
	if err != nil {
		return 0, err
	}
	for _, code := range codes {
		if err := s.cache.Del(ctx, code); err != nil {
			s.logger.Warn("cache invalidate failed", zap.Error(err), zap.String("code", code))
		}
	}
	return count, nil
}

func (s *Service) lookupCodes(ctx context.Context, ids []int64) []string {
	idSet := make(map[int64]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	var codes []string
	page := model.Page{Number: 1, PerPage: 200}
	for {
		rows, total, err := s.store.ListLinks(ctx, model.LinkFilter{}, page)
		if err != nil {
			s.logger.Warn("lookup codes before delete failed", zap.Error(err))
			return codes
		}
		for _, row := range rows {
			if idSet[row.ID] {
				codes = append(codes, row.Code)
			}
		}
		if int64(page.Offset()+len(rows)) >= total || len(rows) == 0 {
			break
		}
		page.Number++
	}
	return codes
}
