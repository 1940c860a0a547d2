// Implements bounded-concurrency resolution of relation target titles.

package records

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrorLoadingTitle is the display sentinel for a relation whose target
// title could not be fetched.
const ErrorLoadingTitle = "Error loading"

// maxConcurrentLookups caps the fan-out when resolving a batch of
// relation references.
const maxConcurrentLookups = 4

// TitleFetcher fetches the title of a referenced record.
type TitleFetcher interface {
	PageTitle(ctx context.Context, id string) (string, error)
}

// TitleResolver resolves relation target titles with a result cache and
// in-flight de-duplication, so one rendered batch issues at most one
// request per distinct reference.
type TitleResolver struct {
	fetcher TitleFetcher

	mu       sync.Mutex
	cache    map[string]string
	inflight map[string]chan struct{}
}

// NewTitleResolver creates a resolver backed by the given fetcher.
func NewTitleResolver(fetcher TitleFetcher) *TitleResolver {
	return &TitleResolver{
		fetcher:  fetcher,
		cache:    make(map[string]string),
		inflight: make(map[string]chan struct{}),
	}
}

// Resolve returns the title for one referenced record, fetching it if
// needed. Failures resolve to ErrorLoadingTitle; the sentinel is not
// cached, so a later lookup retries.
func (r *TitleResolver) Resolve(ctx context.Context, id string) string {
	for {
		r.mu.Lock()
		if title, ok := r.cache[id]; ok {
			r.mu.Unlock()
			return title
		}
		if ch, ok := r.inflight[id]; ok {
			r.mu.Unlock()
			select {
			case <-ch:
				continue // cache or retry
			case <-ctx.Done():
				return ErrorLoadingTitle
			}
		}
		ch := make(chan struct{})
		r.inflight[id] = ch
		r.mu.Unlock()

		title, err := r.fetcher.PageTitle(ctx, id)

		r.mu.Lock()
		delete(r.inflight, id)
		close(ch)
		if err != nil {
			r.mu.Unlock()
			slog.WarnContext(ctx, "Failed to resolve relation title", "id", id, "err", err)
			return ErrorLoadingTitle
		}
		if title == "" {
			title = Untitled
		}
		r.cache[id] = title
		r.mu.Unlock()
		return title
	}
}

// ResolveAll resolves a batch of references with bounded concurrency and
// returns a map from reference ID to title. Every requested ID is present
// in the result; failed lookups carry ErrorLoadingTitle.
func (r *TitleResolver) ResolveAll(ctx context.Context, ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	var outMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		g.Go(func() error {
			title := r.Resolve(ctx, id)
			outMu.Lock()
			out[id] = title
			outMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
