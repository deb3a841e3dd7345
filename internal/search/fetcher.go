package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"moviescroll/internal/domain"
)

// Source is the remote movie database
type Source interface {
	Search(ctx context.Context, query string, page int) (*domain.SearchPage, error)
	Detail(ctx context.Context, id string) (*domain.ResultDetail, error)
}

// Fetcher resolves one page: the search call, then every detail in parallel
type Fetcher struct {
	source      Source
	timeout     time.Duration
	concurrency int
}

// NewFetcher creates a fetcher. A zero timeout means no deadline beyond ctx,
// a concurrency below 1 means unlimited parallel detail calls.
func NewFetcher(source Source, timeout time.Duration, concurrency int) *Fetcher {
	return &Fetcher{
		source:      source,
		timeout:     timeout,
		concurrency: concurrency,
	}
}

// Fetch runs req. The returned details are in the order the search call
// listed them. Any failing detail call fails the whole page.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*domain.Page, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	sp, err := f.source.Search(ctx, req.Query, req.Page)
	if err != nil {
		return nil, errors.Wrap(err, "search call failed")
	}
	if sp == nil {
		return nil, errors.New("search call returned no envelope")
	}
	if !sp.Found {
		return nil, &NoResultsError{Query: req.Query, Page: req.Page, Message: sp.Error}
	}

	details := make([]domain.ResultDetail, len(sp.Summaries))
	g, gctx := errgroup.WithContext(ctx)
	if f.concurrency > 0 {
		g.SetLimit(f.concurrency)
	}
	for i, summary := range sp.Summaries {
		g.Go(func() error {
			d, err := f.source.Detail(gctx, summary.ID)
			if err != nil {
				return errors.Wrapf(err, "detail call for %s failed", summary.ID)
			}
			if d == nil {
				return errors.Errorf("detail call for %s returned nothing", summary.ID)
			}
			details[i] = *d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Page{
		Number:       req.Page,
		Results:      details,
		TotalResults: sp.TotalResults,
	}, nil
}
