package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meur/dotasource/internal/serializer"
)

// DirLoader reads payloads from a local checkout laid out like the mirror.
type DirLoader struct {
	root string
}

// NewDirLoader creates a loader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{root: dir}
}

// Load reads the kind's files from disk.
func (d *DirLoader) Load(ctx context.Context, kind serializer.Kind) (Payload, error) {
	src, ok := Lookup(kind)
	if !ok {
		return Payload{}, fmt.Errorf("%w: %q", serializer.ErrUnknownKind, string(kind))
	}
	if err := ctx.Err(); err != nil {
		return Payload{}, err
	}

	p := Payload{Kind: kind}
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(src.DataPath)))
	if err != nil {
		return Payload{}, fmt.Errorf("reading %s data: %w", kind, err)
	}
	p.Data = data

	if src.I18nPath != "" {
		i18n, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(src.I18nPath)))
		if err != nil {
			return Payload{}, fmt.Errorf("reading %s localization: %w", kind, err)
		}
		p.I18n = i18n
	}
	return p, nil
}
