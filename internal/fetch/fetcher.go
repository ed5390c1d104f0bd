package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/feedfold/feedfold/internal/model"
)

// DefaultUserAgent identifies feedfold in HTTP requests so feed
// operators can recognize the traffic in their logs.
const DefaultUserAgent = "feedfold/1.0 (+https://github.com/feedfold/feedfold)"

// maxBodySize caps how much of a response body is read. Feed documents
// beyond a few megabytes are invariably broken or hostile.
const maxBodySize = 10 * 1024 * 1024 // 10MB

// ErrUnexpectedStatus is returned when a source answers with a non-2xx
// HTTP status.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

// Fetcher retrieves feed sources concurrently over one shared client.
//
// The client is configuration-immutable once constructed, so concurrent
// use by all fetch goroutines is safe. Create the client once per run
// and pass it in; nothing in this package reaches for a global.
type Fetcher struct {
	// client is the HTTP client shared by all fetch goroutines.
	client *http.Client

	// limit caps the number of concurrently running fetches.
	// Zero means one goroutine per source with no cap.
	limit int

	// userAgent is sent with every request.
	userAgent string

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLimit caps concurrent fetches at n. A value of zero or less
// leaves the default unbounded behavior in place.
func WithLimit(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.limit = n
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewClient creates the run's shared HTTP client. The zero timeout
// means no timeout at all: a hung source then hangs the run, which is
// the documented trade-off of the atomic fetch model.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// New creates a Fetcher using the given shared client.
func New(client *http.Client, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    client,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = slog.Default()
	}

	return f
}

// FetchAll retrieves and parses every source concurrently and returns
// the flattened item stream. Items are grouped by source in the order
// the sources were given; ordering across sources carries no meaning
// and is restored chronologically by the merge stage anyway.
//
// The first source error aborts the call and discards all other
// results. In-flight fetches are not waited out beyond the errgroup
// join; their work is thrown away.
func (f *Fetcher) FetchAll(ctx context.Context, sources []string) ([]model.Item, error) {
	f.logger.Debug("fetching sources", "count", len(sources), "limit", f.limit)

	// Per-index slots keep the flattened output deterministic without
	// any cross-goroutine coordination beyond the join itself.
	results := make([][]model.Item, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	if f.limit > 0 {
		g.SetLimit(f.limit)
	}

	for i, source := range sources {
		g.Go(func() error {
			items, err := f.fetchOne(ctx, source)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", source, err)
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []model.Item
	for _, r := range results {
		items = append(items, r...)
	}

	f.logger.Debug("fetch complete", "items", len(items))
	return items, nil
}

// fetchOne retrieves a single source and parses it into items.
func (f *Fetcher) fetchOne(ctx context.Context, source string) ([]model.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck // Close error on read path is unactionable

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	items, err := parseItems(data, source)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("source fetched", "source", source, "items", len(items))
	return items, nil
}
