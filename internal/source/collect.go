package source

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/meur/dotasource/internal/serializer"
)

// Serialized is a payload together with its serialized records.
type Serialized struct {
	Payload Payload
	Result  serializer.Result
}

// Collect loads and serializes each kind concurrently. Results keep the
// order of kinds; the first failure cancels the rest.
func Collect(ctx context.Context, loader Loader, kinds []serializer.Kind) ([]Serialized, error) {
	out := make([]Serialized, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			p, err := loader.Load(ctx, kind)
			if err != nil {
				return fmt.Errorf("loading %s: %w", kind, err)
			}
			res, err := p.Serialize()
			if err != nil {
				return fmt.Errorf("serializing %s: %w", kind, err)
			}
			out[i] = Serialized{Payload: p, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseKinds parses a comma-separated kind list. An empty list selects every
// kind.
func ParseKinds(s string) ([]serializer.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return serializer.Kinds, nil
	}
	var kinds []serializer.Kind
	seen := make(map[serializer.Kind]bool)
	for _, part := range strings.Split(s, ",") {
		kind, err := serializer.ParseKind(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}
