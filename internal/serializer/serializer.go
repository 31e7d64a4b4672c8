// Package serializer turns raw game-definition collections into the
// normalized records served by the API.
package serializer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/meur/dotasource/internal/i18n"
	"github.com/meur/dotasource/internal/raw"
	"github.com/meur/dotasource/internal/text"
)

// Collection roots inside the raw dumps
const (
	AbilitiesRoot = "DOTAAbilities"
	HeroesRoot    = "DOTAHeroes"
)

// Kind names a serializable source.
type Kind string

const (
	KindAbilities Kind = "abilities"
	KindHeroes    Kind = "heroes"
	KindItems     Kind = "items"
)

// Kinds lists every supported kind in a fixed order.
var Kinds = []Kind{KindAbilities, KindHeroes, KindItems}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// NeedsI18n reports whether the kind reads a localization table.
func (k Kind) NeedsI18n() bool {
	return k != KindHeroes
}

// Result is the output of one serialize call.
type Result struct {
	Kind    Kind
	Count   int
	Records any
}

// MarshalJSON encodes only the records.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Records)
}

// Serialize decodes data (and i18n when the kind needs it) and runs the
// matching serializer.
func Serialize(kind Kind, data, i18nData []byte) (Result, error) {
	switch kind {
	case KindAbilities:
		abilities, err := SerializeAbilities(data, i18nData)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: kind, Count: len(abilities), Records: abilities}, nil
	case KindHeroes:
		heroes, err := SerializeHeroes(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: kind, Count: len(heroes), Records: heroes}, nil
	case KindItems:
		items, err := SerializeItems(data, i18nData)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: kind, Count: len(items), Records: items}, nil
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
}

func load(data, i18nData []byte, root string) (*raw.Document, i18n.Tokens, error) {
	doc, err := raw.Parse(data, root)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding %s: %w", root, err)
	}
	tokens, err := i18n.Load(i18nData)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding localization: %w", err)
	}
	return doc, tokens, nil
}

// parseID reads an integer id field; missing or unparseable ids are 0.
func parseID(rec *raw.Record, field string) int {
	s, _ := rec.String(field)
	f := text.ParseNumber(s)
	if math.IsNaN(f) {
		return 0
	}
	return int(f)
}

// tooltip returns a localization token, treating empty text as absent.
func tooltip(tokens i18n.Tokens, key, suffix string) (string, bool) {
	s, ok := tokens.Tooltip(key, suffix)
	return s, ok && s != ""
}

// notes collects the Note0, Note1, ... tokens up to the first gap.
func notes(tokens i18n.Tokens, key string) []string {
	out := []string{}
	for i := 0; ; i++ {
		note, ok := tooltip(tokens, key, "Note"+strconv.Itoa(i))
		if !ok {
			return out
		}
		out = append(out, note)
	}
}

// numericSet parses a per-level field when present.
func numericSet(rec *raw.Record, field string, positiveOnly bool) []float64 {
	s, ok := rec.String(field)
	if !ok || s == "" {
		return nil
	}
	return text.ParseNumericSet(s, positiveOnly)
}

func sortByID[T any](records []T, id func(T) int) {
	sort.SliceStable(records, func(i, j int) bool {
		return id(records[i]) < id(records[j])
	})
}
