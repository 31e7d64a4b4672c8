package serializer

import (
	"strings"

	"github.com/meur/dotasource/internal/i18n"
	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/raw"
	"github.com/meur/dotasource/internal/text"
)

var ignoredAbilities = map[string]bool{
	"Version":           true,
	"ability_base":      true,
	"ability_deward":    true,
	"attribute_bonus":   true,
	"default_attack":    true,
	"dota_base_ability": true,
}

var abilityTypes = map[string]string{
	"DOTA_ABILITY_TYPE_ATTRIBUTES": models.AbilityTypeTalent,
	"DOTA_ABILITY_TYPE_ULTIMATE":   models.AbilityTypeUltimate,
}

var teamTargets = map[string]string{
	"DOTA_UNIT_TARGET_TEAM_BOTH":     "both",
	"DOTA_UNIT_TARGET_TEAM_ENEMY":    "enemy",
	"DOTA_UNIT_TARGET_TEAM_FRIENDLY": "ally",
	"DOTA_UNIT_TARGET_TEAM_ENEMY | DOTA_UNIT_TARGET_TEAM_FRIENDLY": "both",
	"DOTA_UNIT_TARGET_TEAM_FRIENDLY | DOTA_UNIT_TARGET_TEAM_ENEMY": "both",
}

var damageTypes = map[string]string{
	"DAMAGE_TYPE_MAGICAL":  "magical",
	"DAMAGE_TYPE_PHYSICAL": "physical",
	"DAMAGE_TYPE_PURE":     "pure",
}

var spellImmunityTypes = map[string]bool{
	"SPELL_IMMUNITY_ALLIES_NO":   false,
	"SPELL_IMMUNITY_ALLIES_YES":  true,
	"SPELL_IMMUNITY_ENEMIES_YES": true,
	"SPELL_IMMUNITY_ENEMIES_NO":  false,
}

// AbilityType maps a raw AbilityType to its output type. Unknown and
// missing values are basic abilities.
func AbilityType(raw string) string {
	if t, ok := abilityTypes[raw]; ok {
		return t
	}
	return models.AbilityTypeBasic
}

// Abilities serializes the DOTAAbilities collection.
type Abilities struct {
	doc    *raw.Document
	tokens i18n.Tokens
}

// NewAbilities creates an ability serializer over a decoded collection.
func NewAbilities(doc *raw.Document, tokens i18n.Tokens) *Abilities {
	return &Abilities{doc: doc, tokens: tokens}
}

// SerializeAbilities decodes raw ability and localization JSON and
// serializes it.
func SerializeAbilities(data, i18nData []byte) ([]models.Ability, error) {
	doc, tokens, err := load(data, i18nData, AbilitiesRoot)
	if err != nil {
		return nil, err
	}
	return NewAbilities(doc, tokens).Serialize(), nil
}

// Serialize returns every ability sorted by id.
func (s *Abilities) Serialize() []models.Ability {
	abilities := make([]models.Ability, 0, s.doc.Len())
	for _, e := range s.doc.Entries() {
		if ignoredAbilities[e.Key] {
			continue
		}
		abilities = append(abilities, s.ability(e.Key, e.Record))
	}
	sortByID(abilities, func(a models.Ability) int { return a.ID })
	return abilities
}

func (s *Abilities) ability(key string, rec *raw.Record) models.Ability {
	rawType, _ := rec.String("AbilityType")
	ability := models.Ability{
		ID:   parseID(rec, "ID"),
		Key:  key,
		Type: AbilityType(rawType),
	}
	if name, ok := s.tokens.Tooltip(key, ""); ok {
		ability.Name = text.StripExtraWhitespace(name)
	}

	if ability.Type == models.AbilityTypeTalent {
		return ability
	}

	attrs := raw.AttributesOf(rec, "AbilitySpecial")
	d := &models.AbilityDetails{
		Notes:              notes(s.tokens, key),
		CastRange:          numericSet(rec, "AbilityCastRange", true),
		CastPoint:          numericSet(rec, "AbilityCastPoint", true),
		ChannelTime:        numericSet(rec, "AbilityChannelTime", true),
		Duration:           numericSet(rec, "AbilityDuration", true),
		Damage:             numericSet(rec, "AbilityDamage", true),
		Cooldown:           numericSet(rec, "AbilityCooldown", false),
		ManaCost:           numericSet(rec, "AbilityManaCost", false),
		HasScepterUpgrade:  fieldEquals(rec, "HasScepterUpgrade", "1"),
		IsGrantedByScepter: fieldEquals(rec, "IsGrantedByScepter", "1"),
		CustomAttributes:   CustomAttributes(attrs, s.tokens, key),
	}

	if desc, ok := tooltip(s.tokens, key, "Description"); ok {
		d.Description = text.Format(text.Substitute(desc, attrs))
	}
	if lore, ok := tooltip(s.tokens, key, "Lore"); ok {
		d.Lore = lore
	}
	if team, ok := rec.String("AbilityUnitTargetTeam"); ok {
		d.TeamTarget = teamTargets[team]
	}
	if targets, ok := rec.String("AbilityUnitTargetType"); ok && targets != "" {
		d.UnitTargets = unitTargets(targets)
	}
	if dmg, ok := rec.String("AbilityUnitDamageType"); ok {
		d.DamageType = damageTypes[dmg]
	}
	if immunity, ok := rec.String("SpellImmunityType"); ok {
		if pierces, known := spellImmunityTypes[immunity]; known {
			d.PiercesSpellImmunity = &pierces
		}
	}

	ability.AbilityDetails = d
	return ability
}

// unitTargets splits a "A | B" target list and maps each entry through the
// team-target table, dropping entries it does not know.
func unitTargets(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, " | ") {
		if v, ok := teamTargets[t]; ok {
			out = append(out, v)
		}
	}
	return out
}

func fieldEquals(rec *raw.Record, field, want string) bool {
	s, ok := rec.String(field)
	return ok && s == want
}
