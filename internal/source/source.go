// Package source knows where the raw dumps for each kind live and how to
// retrieve them, either from the upstream mirror or a local checkout.
package source

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/serializer"
)

// Source describes the raw files behind one kind. Paths are relative to the
// mirror root.
type Source struct {
	Kind        serializer.Kind
	Name        string
	Description string
	DataPath    string
	I18nPath    string
}

var registry = []Source{
	{
		Kind:        serializer.KindAbilities,
		Name:        "Abilities",
		Description: "Hero abilities and talents",
		DataPath:    "dota/scripts/npc/npc_abilities.json",
		I18nPath:    "dota/resource/localization/abilities_english.json",
	},
	{
		Kind:        serializer.KindHeroes,
		Name:        "Heroes",
		Description: "Hero attributes and base stats",
		DataPath:    "dota/scripts/npc/npc_heroes.json",
	},
	{
		Kind:        serializer.KindItems,
		Name:        "Items",
		Description: "Shop items, recipes and their upgrade paths",
		DataPath:    "dota/scripts/npc/items.json",
		I18nPath:    "dota/resource/dota_english.json",
	},
}

// All returns every registered source.
func All() []Source {
	return registry
}

// Lookup returns the source for kind.
func Lookup(kind serializer.Kind) (Source, bool) {
	for _, s := range registry {
		if s.Kind == kind {
			return s, true
		}
	}
	return Source{}, false
}

// Info describes the source with absolute URLs under baseURL.
func (s Source) Info(baseURL string) models.SourceInfo {
	info := models.SourceInfo{
		Kind:        string(s.Kind),
		Name:        s.Name,
		Description: s.Description,
		DataURL:     joinURL(baseURL, s.DataPath),
	}
	if s.I18nPath != "" {
		info.I18nURL = joinURL(baseURL, s.I18nPath)
	}
	return info
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}

// Payload is the pair of raw blobs for one kind.
type Payload struct {
	Kind serializer.Kind
	Data []byte
	I18n []byte
}

// Loader retrieves the raw payload for a kind.
type Loader interface {
	Load(ctx context.Context, kind serializer.Kind) (Payload, error)
}

// Serialize runs the kind's serializer over the payload.
func (p Payload) Serialize() (serializer.Result, error) {
	return serializer.Serialize(p.Kind, p.Data, p.I18n)
}

// Revision is a stable id derived from the payload bytes.
func (p Payload) Revision() string {
	buf := make([]byte, 0, len(p.Kind)+len(p.Data)+len(p.I18n)+2)
	buf = append(buf, p.Kind...)
	buf = append(buf, 0)
	buf = append(buf, p.Data...)
	buf = append(buf, 0)
	buf = append(buf, p.I18n...)
	return uuid.NewSHA1(uuid.NameSpaceURL, buf).String()
}
