package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meur/dotasource/internal/serializer"
)

// ErrUpstream is returned when the mirror answers with a non-200 status.
var ErrUpstream = errors.New("upstream request failed")

// maxBodySize bounds a single raw file.
const maxBodySize = 256 << 20

// Fetcher downloads raw payloads from an HTTP mirror.
type Fetcher struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewFetcher creates a fetcher for the mirror at baseURL. Each Load is
// bounded by timeout; zero means no bound beyond the caller's context.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
	}
}

// Load fetches the data file and, when the kind has one, the localization
// file concurrently.
func (f *Fetcher) Load(ctx context.Context, kind serializer.Kind) (Payload, error) {
	src, ok := Lookup(kind)
	if !ok {
		return Payload{}, fmt.Errorf("%w: %q", serializer.ErrUnknownKind, string(kind))
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	p := Payload{Kind: kind}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.get(gctx, joinURL(f.baseURL, src.DataPath))
		p.Data = data
		return err
	})
	if src.I18nPath != "" {
		g.Go(func() error {
			data, err := f.get(gctx, joinURL(f.baseURL, src.I18nPath))
			p.I18n = data
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", ErrUpstream, url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}
