// Package redirectsvc implements the hot redirect path: resolve a code,
// decide the redirect response, and spawn access-event recording off the
// request's critical path. Widened from the teacher's
// internal/shortener/resolve.go (a single detached goroutine per click) into
// a bounded channel plus a small fixed worker pool, per SPEC_FULL.md §5's
// concurrency model — a burst of redirects must not spawn an unbounded
// number of goroutines.
package redirectsvc

import (
	"context"
	"time"

	"github.com/koopa0/shortener/internal/enrich"
	"github.com/koopa0/shortener/internal/model"
	"github.com/koopa0/shortener/internal/storage"
	"github.com/koopa0/shortener/pkg/snowflake"
	"go.uber.org/zap"
)

// Request carries the request-time facts the pipeline needs to resolve a
// redirect and, separately, to build an access event.
type Request struct {
	Code      string
	IP        string
	UserAgent string
	Referer   string
}

// Result is what the HTTP layer needs to respond: the destination for an
// enabled link, or a sentinel (NotFound covers both missing and disabled).
type Result struct {
	Link *model.Link
}

// Pipeline resolves redirects and records access events asynchronously.
type Pipeline struct {
	links         Linker
	geo           *enrich.Geo
	store         storage.Store
	idgen         *snowflake.Generator
	queue         chan event
	logger        *zap.Logger
	eventDeadline time.Duration
}

// Linker is the subset of linksvc.Service the pipeline depends on.
type Linker interface {
	Get(ctx context.Context, code string) (*model.Link, error)
}

type event struct {
	linkID     int64
	code       string
	ip         string
	userAgent  string
	referer    string
	accessedAt time.Time
}

// Config tunes the worker pool. Workers defaults to 4, QueueSize to 1024,
// EventDeadline to 5s, matching SPEC_FULL.md §4.6's default cap.
type Config struct {
	Workers       int
	QueueSize     int
	EventDeadline time.Duration
}

// New builds a Pipeline and starts its fixed worker pool. Call Close to
// drain it during shutdown. idgen assigns each recorded AccessEvent's
// primary key — internal/app shares the same Generator instance between
// this pipeline and internal/linksvc so Link.ID and AccessEvent.ID are
// minted from one machine ID.
func New(links Linker, geo *enrich.Geo, store storage.Store, idgen *snowflake.Generator, logger *zap.Logger, cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.EventDeadline <= 0 {
		cfg.EventDeadline = 5 * time.Second
	}

	p := &Pipeline{
		links:         links,
		geo:           geo,
		store:         store,
		idgen:         idgen,
		queue:         make(chan event, cfg.QueueSize),
		logger:        logger,
		eventDeadline: cfg.EventDeadline,
	}
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

// Resolve looks up code. The caller is responsible for dispatching the 3xx
// response; Resolve itself does not touch HTTP. A disabled link is reported
// as model.ErrNotFound to the caller (the redirect is suppressed) but
// RecordAccess should still be called — the click happened even though the
// redirect did not (SPEC_FULL.md §4.6).
func (p *Pipeline) Resolve(ctx context.Context, code string) (*model.Link, error) {
	link, err := p.links.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if !link.Enabled() {
		return link, model.ErrNotFound
	}
	return link, nil
}

// RecordAccess enqueues an access event for asynchronous enrichment and
// persistence. It never blocks the caller: on a full queue the event is
// dropped with a warning log rather than backing up the redirect path.
func (p *Pipeline) RecordAccess(link *model.Link, req Request) {
	linkID := int64(0)
	code := req.Code
	if link != nil {
		linkID = link.ID
		code = link.Code
	}
	e := event{
		linkID: linkID, code: code, ip: req.IP,
		userAgent: req.UserAgent, referer: req.Referer,
		accessedAt: time.Now(),
	}
	select {
	case p.queue <- e:
	default:
		p.logger.Warn("access event queue full, dropping event", zap.String("code", code))
	}
}

func (p *Pipeline) worker() {
	for e := range p.queue {
		p.process(e)
	}
}

func (p *Pipeline) process(e event) {
	ctx, cancel := context.WithTimeout(context.Background(), p.eventDeadline)
	defer cancel()

	geo := p.geo.Lookup(e.ip)
	ua := enrich.ParseUA(e.userAgent)

	id, err := p.idgen.Generate()
	if err != nil {
		p.logger.Warn("generate access event id failed", zap.Error(err), zap.String("code", e.code))
		return
	}

	record := &model.AccessEvent{
		ID: id, LinkID: e.linkID, Code: e.code, IP: e.ip, UserAgent: e.userAgent, Referer: e.referer,
		Country: geo.Country, Region: geo.Region, Province: geo.Province, City: geo.City, ISP: geo.ISP,
		DeviceType: ua.DeviceType, OS: ua.OS, Browser: ua.Browser,
		AccessedAt: e.accessedAt, CreatedAt: time.Now(),
	}

	if err := p.store.InsertEvent(ctx, record); err != nil {
		p.logger.Warn("insert access event failed", zap.Error(err), zap.String("code", e.code))
	}
}

// Close stops accepting new events and waits for the queue to drain up to
// deadline, matching the shutdown sequence SPEC_FULL.md §4.10 describes.
func (p *Pipeline) Close(ctx context.Context) {
	close(p.queue)
	done := make(chan struct{})
	go func() {
		// Workers exit their range loop once the queue is closed and
		// drained; there is no explicit "all workers done" signal here
		// beyond the queue itself closing, so this just waits for the
		// channel to empty or the deadline to pass.
		for len(p.queue) > 0 {
			time.Sleep(10 * time.Millisecond)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		p.logger.Warn("shutdown deadline reached with events still queued", zap.Int("remaining", len(p.queue)))
	}
}
