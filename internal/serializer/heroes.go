package serializer

import (
	"fmt"
	"strings"

	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/raw"
	"github.com/meur/dotasource/internal/text"
)

// BaseHero is the record every hero inherits its defaults from.
const BaseHero = "npc_dota_hero_base"

var ignoredHeroes = map[string]bool{
	"Version":                    true,
	BaseHero:                     true,
	"npc_dota_hero_target_dummy": true,
}

var primaryAttributes = map[string]string{
	"DOTA_ATTRIBUTE_STRENGTH":  "str",
	"DOTA_ATTRIBUTE_AGILITY":   "agi",
	"DOTA_ATTRIBUTE_INTELLECT": "int",
}

var attackTypes = map[string]string{
	"DOTA_UNIT_CAP_MELEE_ATTACK":  "melee",
	"DOTA_UNIT_CAP_RANGED_ATTACK": "ranged",
}

// Heroes serializes the DOTAHeroes collection.
type Heroes struct {
	doc *raw.Document
}

// NewHeroes creates a hero serializer over a decoded collection.
func NewHeroes(doc *raw.Document) *Heroes {
	return &Heroes{doc: doc}
}

// SerializeHeroes decodes raw hero JSON and serializes it.
func SerializeHeroes(data []byte) ([]models.Hero, error) {
	doc, err := raw.Parse(data, HeroesRoot)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", HeroesRoot, err)
	}
	return NewHeroes(doc).Serialize()
}

// Serialize returns every hero sorted by id. A hero without a Role fails the
// whole call.
func (s *Heroes) Serialize() ([]models.Hero, error) {
	base, _ := s.doc.Lookup(BaseHero)

	heroes := make([]models.Hero, 0, s.doc.Len())
	for _, e := range s.doc.Entries() {
		if ignoredHeroes[e.Key] {
			continue
		}
		hero, err := s.hero(e.Key, base.Merge(e.Record))
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, hero)
	}
	sortByID(heroes, func(h models.Hero) int { return h.ID })
	return heroes, nil
}

func (s *Heroes) hero(key string, rec *raw.Record) (models.Hero, error) {
	role, ok := rec.String("Role")
	if !ok {
		return models.Hero{}, &FieldError{Entity: key, Field: "Role"}
	}

	name, _ := rec.String("workshop_guide_name")
	primary, _ := rec.String("AttributePrimary")
	attack, _ := rec.String("AttackCapabilities")

	return models.Hero{
		ID:                    parseID(rec, "HeroID"),
		Key:                   key,
		Name:                  name,
		Roles:                 roles(role),
		Complexity:            number(rec, "Complexity"),
		PrimaryAttribute:      primaryAttributes[primary],
		BaseStr:               number(rec, "AttributeBaseStrength"),
		BaseAgi:               number(rec, "AttributeBaseAgility"),
		BaseInt:               number(rec, "AttributeBaseIntelligence"),
		StrGain:               number(rec, "AttributeStrengthGain"),
		AgiGain:               number(rec, "AttributeAgilityGain"),
		IntGain:               number(rec, "AttributeIntelligenceGain"),
		BaseHealth:            number(rec, "StatusHealth"),
		BaseMana:              number(rec, "StatusMana"),
		BaseHealthRegen:       number(rec, "StatusHealthRegen"),
		BaseManaRegen:         number(rec, "StatusManaRegen"),
		AttackType:            attackTypes[attack],
		AttackRange:           number(rec, "AttackRange"),
		AttackRate:            number(rec, "AttackRate"),
		BaseAttackMin:         number(rec, "AttackDamageMin"),
		BaseAttackMax:         number(rec, "AttackDamageMax"),
		BaseArmor:             number(rec, "ArmorPhysical"),
		BaseMagicalResistance: number(rec, "MagicalResistance"),
		MovementSpeed:         number(rec, "MovementSpeed"),
		MovementTurnRate:      number(rec, "MovementTurnRate"),
	}, nil
}

func roles(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(p)
	}
	return parts
}

// number reads a numeric field; absent fields are NaN (encoded as null).
func number(rec *raw.Record, field string) models.Number {
	s, ok := rec.String(field)
	if !ok {
		return models.NaN()
	}
	return models.Number(text.ParseNumber(s))
}
