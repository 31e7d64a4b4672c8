package serializer

import (
	"fmt"
	"strings"

	"github.com/meur/dotasource/internal/i18n"
	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/raw"
	"github.com/meur/dotasource/internal/text"
)

const recipePrefix = "item_recipe"

// Items serializes the item definitions, which share the DOTAAbilities
// layout.
type Items struct {
	doc    *raw.Document
	tokens i18n.Tokens
}

// NewItems creates an item serializer over a decoded collection.
func NewItems(doc *raw.Document, tokens i18n.Tokens) *Items {
	return &Items{doc: doc, tokens: tokens}
}

// SerializeItems decodes raw item and localization JSON and serializes it.
func SerializeItems(data, i18nData []byte) ([]models.Item, error) {
	doc, tokens, err := load(data, i18nData, AbilitiesRoot)
	if err != nil {
		return nil, err
	}
	return NewItems(doc, tokens).Serialize(), nil
}

// IsRecipe reports whether key names a recipe.
func IsRecipe(key string) bool {
	return strings.HasPrefix(key, recipePrefix)
}

// Serialize returns every item sorted by id with upgrades linked.
func (s *Items) Serialize() []models.Item {
	ignored := s.ignoredKeys()

	items := make([]models.Item, 0, s.doc.Len())
	for _, e := range s.doc.Entries() {
		if ignored[e.Key] {
			continue
		}
		items = append(items, s.item(e.Key, e.Record))
	}
	sortByID(items, func(it models.Item) int { return it.ID })
	LinkUpgrades(items)
	return items
}

// ignoredKeys lists Version and every free recipe. Free recipes are
// placeholders for items that combine without a scroll.
func (s *Items) ignoredKeys() map[string]bool {
	ignored := map[string]bool{"Version": true}
	for _, e := range s.doc.Entries() {
		if IsRecipe(e.Key) && fieldEquals(e.Record, "ItemCost", "0") {
			ignored[e.Key] = true
		}
	}
	return ignored
}

func (s *Items) item(key string, rec *raw.Record) models.Item {
	attrs := raw.AttributesOf(rec, "AbilitySpecial")
	item := models.Item{
		ID:               parseID(rec, "ID"),
		Key:              key,
		Notes:            notes(s.tokens, key),
		Recipe:           IsRecipe(key),
		CustomAttributes: CustomAttributes(attrs, s.tokens, key),
		Requirements:     s.requirements(key, rec),
	}

	if name, ok := s.tokens.Tooltip(key, ""); ok {
		if level, ok := rec.String("ItemBaseLevel"); ok && level != "" {
			name = fmt.Sprintf("%s (level %s)", name, level)
		}
		item.Name = text.StripExtraWhitespace(name)
	}
	if desc, ok := tooltip(s.tokens, key, "Description"); ok {
		item.Description = describe(text.Substitute(desc, attrs))
	}
	if lore, ok := tooltip(s.tokens, key, "Lore"); ok {
		item.Lore = lore
	}
	if cost, ok := rec.String("ItemCost"); ok && cost != "" {
		if n, ok := text.ParseLeadingInt(cost); ok {
			item.Cost = &n
		}
	}

	item.SideShop = fieldEquals(rec, "SideShop", "1")
	item.SecretShop = !item.SideShop && fieldEquals(rec, "SecretShop", "1")
	item.HomeShop = !item.SideShop && !item.SecretShop

	if cd, ok := rec.String("AbilityCooldown"); ok && cd != "" {
		n := models.Number(text.ParseNumber(cd))
		item.Cooldown = &n
	}
	if mana, ok := rec.String("AbilityManaCost"); ok && mana != "" {
		n := models.Number(text.ParseNumber(mana))
		item.ManaCost = &n
	}

	return item
}

// requirements resolves the component list from the item's recipe. A
// non-recipe item with a cost lists its own key after the components.
func (s *Items) requirements(key string, rec *raw.Record) []string {
	recipeKey := key
	if !IsRecipe(key) {
		recipeKey = strings.Replace(key, "item_", recipePrefix+"_", 1)
	}

	out := []string{}
	recipe, ok := s.doc.Lookup(recipeKey)
	if !ok {
		return out
	}
	v, _ := recipe.Get("ItemRequirements")
	lists := raw.Values(v)
	if len(lists) == 0 {
		return out
	}

	for _, req := range strings.Split(lists[0].String(), ";") {
		if req != "" {
			out = append(out, req)
		}
	}
	if len(out) == 0 {
		return out
	}
	if !IsRecipe(key) && hasCost(rec) {
		out = append(out, key)
	}
	return out
}

func hasCost(rec *raw.Record) bool {
	cost, ok := rec.String("ItemCost")
	return ok && cost != "" && cost != "0"
}

// describe segments an item description into hint and headed blocks.
// Blocks with malformed <h1> markup are skipped.
func describe(s string) []models.DescriptionBlock {
	blocks := []models.DescriptionBlock{}
	for _, seg := range strings.Split(s, `\n`) {
		if !text.HasHeading(seg) {
			blocks = append(blocks, models.DescriptionBlock{
				Type: "hint",
				Body: text.Format(seg),
			})
			continue
		}
		hb, err := text.ParseHeadedBlock(seg)
		if err != nil {
			continue
		}
		blocks = append(blocks, models.DescriptionBlock{
			Type:   hb.Type,
			Header: hb.Header,
			Body:   text.Format(hb.Body),
		})
	}
	return blocks
}
