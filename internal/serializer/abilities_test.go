package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dotasource/internal/models"
)

func serializeAbilityFixtures(t *testing.T) map[string]models.Ability {
	t.Helper()
	abilities, err := SerializeAbilities(readFixture(t, "npc_abilities.json"), readFixture(t, "abilities_english.json"))
	require.NoError(t, err)

	byKey := make(map[string]models.Ability, len(abilities))
	for _, a := range abilities {
		byKey[a.Key] = a
	}
	return byKey
}

func TestAbilities_SortedAndFiltered(t *testing.T) {
	t.Parallel()

	abilities, err := SerializeAbilities(readFixture(t, "npc_abilities.json"), readFixture(t, "abilities_english.json"))
	require.NoError(t, err)

	var keys []string
	for i, a := range abilities {
		keys = append(keys, a.Key)
		if i > 0 {
			assert.LessOrEqual(t, abilities[i-1].ID, a.ID)
		}
	}
	assert.Equal(t, []string{
		"nevermore_shadowraze1",
		"nevermore_shadowraze2",
		"nevermore_requiem",
		"special_bonus_unique_nevermore_1",
		"tie_second",
		"tie_first",
	}, keys)
}

func TestAbilities_Basic(t *testing.T) {
	t.Parallel()

	a := serializeAbilityFixtures(t)["nevermore_shadowraze1"]
	require.NotNil(t, a.AbilityDetails)

	assert.Equal(t, 5059, a.ID)
	assert.Equal(t, "Shadowraze (Near)", a.Name)
	assert.Equal(t, models.AbilityTypeBasic, a.Type)
	assert.Equal(t, []string{
		"Shadow Fiend razes the area, dealing 90 160 230 300 damage.",
		"Each raze adds 50 60 70 80 bonus damage, up to 100%.",
	}, a.Description)
	assert.Equal(t, []string{"Shadowraze hits in a 250 radius.", "Each raze stacks a debuff."}, a.Notes)
	assert.Equal(t, "Nevermore razes the ground with the souls he has stolen.", a.Lore)
	assert.Equal(t, "enemy", a.TeamTarget)
	assert.Equal(t, []string{"enemy"}, a.UnitTargets)
	assert.Equal(t, "magical", a.DamageType)
	require.NotNil(t, a.PiercesSpellImmunity)
	assert.False(t, *a.PiercesSpellImmunity)

	assert.Equal(t, []float64{}, a.CastRange)
	assert.Equal(t, []float64{0.55}, a.CastPoint)
	assert.Equal(t, []float64{10}, a.Cooldown)
	assert.Equal(t, []float64{75, 80, 85, 90}, a.ManaCost)
	assert.Equal(t, []float64{90, 160, 230, 300}, a.Damage)
	assert.Nil(t, a.ChannelTime)
	assert.Nil(t, a.Duration)
	assert.False(t, a.HasScepterUpgrade)
	assert.False(t, a.IsGrantedByScepter)

	assert.Equal(t, []models.CustomAttribute{
		{Key: "shadowraze_damage", Value: "90 160 230 300", Header: "DAMAGE:"},
		{Key: "shadowraze_radius", Value: "250", Header: "RADIUS:"},
	}, a.CustomAttributes)
}

func TestAbilities_Ultimate(t *testing.T) {
	t.Parallel()

	a := serializeAbilityFixtures(t)["nevermore_requiem"]
	require.NotNil(t, a.AbilityDetails)

	assert.Equal(t, "Requiem of Souls", a.Name)
	assert.Equal(t, models.AbilityTypeUltimate, a.Type)
	assert.Equal(t, "both", a.TeamTarget)
	assert.True(t, a.HasScepterUpgrade)
	assert.Nil(t, a.Description)
	assert.Equal(t, []string{}, a.Notes)
	assert.Equal(t, []models.CustomAttribute{
		{Key: "requiem_line_damage_scepter", Value: "80", Scepter: true, Header: "Damage", Prefix: "+"},
		{Key: "requiem_reduction_ms", Value: "-25", Header: "MOVE SLOW:", Suffix: "%"},
	}, a.CustomAttributes)
}

func TestAbilities_TalentShortCircuit(t *testing.T) {
	t.Parallel()

	a := serializeAbilityFixtures(t)["special_bonus_unique_nevermore_1"]
	assert.Equal(t, models.AbilityTypeTalent, a.Type)
	assert.Nil(t, a.AbilityDetails)

	got := fields(t, a)
	assert.Equal(t, map[string]any{
		"id":   float64(6000),
		"key":  "special_bonus_unique_nevermore_1",
		"name": "+35 Shadowraze Damage",
		"type": "talent",
	}, got)
}

func TestAbilities_OptionalFieldPresence(t *testing.T) {
	t.Parallel()

	got := fields(t, serializeAbilityFixtures(t)["nevermore_shadowraze2"])

	assert.Equal(t, []any{}, got["notes"], "notes always present")
	assert.Equal(t, []any{float64(450)}, got["cast_range"])
	assert.Equal(t, false, got["has_scepter_upgrade"])
	for _, absent := range []string{"name", "description", "lore", "team_target", "unit_targets", "damage_type", "pierces_spell_immunity", "cooldown", "custom_attributes"} {
		assert.NotContains(t, got, absent)
	}

	raze := fields(t, serializeAbilityFixtures(t)["nevermore_shadowraze1"])
	assert.Equal(t, []any{}, raze["cast_range"], "present field filtered to empty stays present")
}

func TestAbilityType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.AbilityTypeTalent, AbilityType("DOTA_ABILITY_TYPE_ATTRIBUTES"))
	assert.Equal(t, models.AbilityTypeUltimate, AbilityType("DOTA_ABILITY_TYPE_ULTIMATE"))
	assert.Equal(t, models.AbilityTypeBasic, AbilityType("DOTA_ABILITY_TYPE_BASIC"))
	assert.Equal(t, models.AbilityTypeBasic, AbilityType(""))
}

func TestUnitTargets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"enemy", "ally"}, unitTargets("DOTA_UNIT_TARGET_TEAM_ENEMY | DOTA_UNIT_TARGET_TEAM_FRIENDLY"))
	assert.Equal(t, []string{}, unitTargets("DOTA_UNIT_TARGET_HERO | DOTA_UNIT_TARGET_BASIC"))
}
