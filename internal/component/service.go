// Package component assembles component records from the EasyEDA components
// API and the LCSC product page.
package component

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/easyeda-mcp/internal/cache"
	"github.com/usestring/easyeda-mcp/pkg/productpage"
)

// Upstream fetches raw part data. *client.Client implements it.
type Upstream interface {
	GetComponent(ctx context.Context, lcscID string) (map[string]any, error)
	GetProductPage(ctx context.Context, lcscID string) ([]byte, error)
	Get3DModelOBJ(ctx context.Context, uuid string) (string, error)
}

// EnrichmentError reports that the product page could not be fetched or
// decoded while strict enrichment is on.
type EnrichmentError struct {
	LCSCID string
	Err    error
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enriching %s from product page: %v", e.LCSCID, e.Err)
}

func (e *EnrichmentError) Unwrap() error {
	return e.Err
}

// Options configures a Service.
type Options struct {
	// FetchWorkers bounds concurrent lookups in GetMany.
	FetchWorkers int
	// StrictEnrichment fails lookups whose product page cannot be used.
	// Otherwise the record is returned with CAD data only.
	StrictEnrichment bool
	// Extractor decodes product pages. Defaults to productpage.NewExtractor().
	Extractor *productpage.Extractor
	// Now is the clock used for FetchedAt. Defaults to time.Now.
	Now func() time.Time
}

// Service looks up components with caching and request deduplication.
type Service struct {
	upstream Upstream
	cache    *cache.Cache[*Record]
	opts     Options
	group    singleflight.Group
}

// NewService creates a Service. cache may be nil to disable caching.
func NewService(upstream Upstream, c *cache.Cache[*Record], opts Options) *Service {
	if opts.FetchWorkers <= 0 {
		opts.FetchWorkers = 4
	}
	if opts.Extractor == nil {
		opts.Extractor = productpage.NewExtractor()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{upstream: upstream, cache: c, opts: opts}
}

// Get returns the assembled record for a part, from cache when possible.
// Concurrent calls for the same part share one fetch.
func (s *Service) Get(ctx context.Context, lcscID string) (*Record, error) {
	id, err := NormalizeID(lcscID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if rec, ok := s.cache.Get(id); ok {
			return rec, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared fetch outlives any one caller; each caller stops waiting
	// on its own context. The HTTP client timeout bounds the fetch.
	ch := s.group.DoChan(id, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), id)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		slog.Debug("shared in-flight component lookup", slog.String("lcsc_id", id))
	}
	return res.Val.(*Record), nil
}

// Refresh drops any cached record for a part and fetches it again.
func (s *Service) Refresh(ctx context.Context, lcscID string) (*Record, error) {
	id, err := NormalizeID(lcscID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Remove(id)
	}
	return s.Get(ctx, id)
}

// fetch loads CAD data and the product page concurrently and merges them.
func (s *Service) fetch(ctx context.Context, id string) (*Record, error) {
	start := time.Now()

	var (
		cad     map[string]any
		page    []byte
		pageErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cad, err = s.upstream.GetComponent(gctx, id)
		return err
	})
	g.Go(func() error {
		// A page failure must not cancel the CAD fetch.
		page, pageErr = s.upstream.GetProductPage(gctx, id)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var extraction *productpage.Extraction
	enrichErr := pageErr
	if enrichErr == nil {
		extraction, enrichErr = s.extract(page)
	}

	if enrichErr != nil {
		if s.opts.StrictEnrichment {
			return nil, &EnrichmentError{LCSCID: id, Err: enrichErr}
		}
		slog.Warn("product page enrichment skipped",
			slog.String("lcsc_id", id),
			slog.String("error", enrichErr.Error()),
		)
	}

	rec := newRecord(id, cad, extraction, s.opts.Now())
	if enrichErr != nil {
		rec.EnrichmentError = enrichErr.Error()
	} else if s.cache != nil {
		s.cache.Put(id, rec)
	}

	slog.Debug("component assembled",
		slog.String("lcsc_id", id),
		slog.Int("parameters", len(rec.Parameters)),
		slog.Bool("enriched", rec.Enriched()),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return rec, nil
}

func (s *Service) extract(page []byte) (*productpage.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing product page: %w", err)
	}
	return s.opts.Extractor.Extract(doc)
}

// PageDocument fetches and parses a part's product page.
func (s *Service) PageDocument(ctx context.Context, lcscID string) (*goquery.Document, []byte, error) {
	id, err := NormalizeID(lcscID)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.upstream.GetProductPage(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing product page: %w", err)
	}
	return doc, page, nil
}

// PageData extracts the description and parameters from the product page
// alone, without the components API. Errors are always returned.
func (s *Service) PageData(ctx context.Context, lcscID string) (*productpage.Extraction, error) {
	if id, err := NormalizeID(lcscID); err == nil {
		if rec, ok := s.cachedRecord(id); ok {
			return &productpage.Extraction{Description: rec.Description, Parameters: rec.Parameters}, nil
		}
	}

	doc, _, err := s.PageDocument(ctx, lcscID)
	if err != nil {
		return nil, err
	}
	return s.opts.Extractor.Extract(doc)
}

func (s *Service) cachedRecord(id string) (*Record, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(id)
}

// Model fetches the OBJ text of a 3D model by UUID.
func (s *Service) Model(ctx context.Context, uuid string) (string, error) {
	return s.upstream.Get3DModelOBJ(ctx, uuid)
}

// ErrNoModel is returned when a part's footprint references no 3D model.
var ErrNoModel = errors.New("footprint has no 3D model")

// ModelForPart looks up a part and fetches the 3D model its footprint
// references.
func (s *Service) ModelForPart(ctx context.Context, lcscID string) (ModelRef, string, error) {
	rec, err := s.Get(ctx, lcscID)
	if err != nil {
		return ModelRef{}, "", err
	}
	ref, ok := rec.ModelRef()
	if !ok {
		return ModelRef{}, "", fmt.Errorf("%s: %w", rec.LCSCID, ErrNoModel)
	}
	obj, err := s.Model(ctx, ref.UUID)
	if err != nil {
		return ref, "", err
	}
	return ref, obj, nil
}
