package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/dotasource/internal/models"
)

func TestHeroes_Serialize(t *testing.T) {
	t.Parallel()

	heroes, err := SerializeHeroes(readFixture(t, "npc_heroes.json"))
	require.NoError(t, err)
	require.Len(t, heroes, 2, "base hero, target dummy and Version are excluded")

	am, sf := heroes[0], heroes[1]
	assert.Equal(t, "npc_dota_hero_antimage", am.Key)
	assert.Equal(t, "npc_dota_hero_nevermore", sf.Key)

	assert.Equal(t, 11, sf.ID)
	assert.Equal(t, "Shadow Fiend", sf.Name)
	assert.Equal(t, []string{"carry", "nuker"}, sf.Roles)
	assert.Equal(t, models.Number(2), sf.Complexity)
	assert.Equal(t, "agi", sf.PrimaryAttribute)
	assert.Equal(t, models.Number(19), sf.BaseStr)
	assert.Equal(t, models.Number(3.5), sf.AgiGain)
	assert.Equal(t, "ranged", sf.AttackType, "inherited from the base hero")
	assert.Equal(t, models.Number(1.7), sf.AttackRate)
	assert.Equal(t, models.Number(-1), sf.BaseArmor)
	assert.Equal(t, models.Number(305), sf.MovementSpeed)
}

func TestHeroes_Inheritance(t *testing.T) {
	t.Parallel()

	heroes, err := SerializeHeroes(readFixture(t, "npc_heroes.json"))
	require.NoError(t, err)
	am := heroes[0]

	assert.Equal(t, models.Number(0), am.BaseStr, "base value used verbatim")
	assert.Equal(t, models.Number(24), am.BaseAgi, "own value overrides base")
	assert.Equal(t, models.Number(1), am.Complexity)
	assert.Equal(t, models.Number(120), am.BaseHealth)
	assert.Equal(t, "melee", am.AttackType)
	assert.False(t, am.StrGain.Valid(), "absent everywhere")

	got := fields(t, am)
	assert.Nil(t, got["str_gain"])
	assert.Contains(t, got, "str_gain")
}

func TestHeroes_MissingRole(t *testing.T) {
	t.Parallel()

	_, err := SerializeHeroes([]byte(`{"DOTAHeroes": {
		"npc_dota_hero_base": {"HeroID": "0"},
		"npc_dota_hero_axe": {"HeroID": "2", "workshop_guide_name": "Axe"}
	}}`))
	require.ErrorIs(t, err, ErrMissingField)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "npc_dota_hero_axe", fe.Entity)
	assert.Equal(t, "Role", fe.Field)
}

func TestHeroes_NoBaseHero(t *testing.T) {
	t.Parallel()

	heroes, err := SerializeHeroes([]byte(`{"DOTAHeroes": {
		"npc_dota_hero_axe": {"HeroID": "2", "Role": "Initiator,Durable", "AttributeBaseStrength": "25"}
	}}`))
	require.NoError(t, err)
	require.Len(t, heroes, 1)
	assert.Equal(t, []string{"initiator", "durable"}, heroes[0].Roles)
	assert.Equal(t, models.Number(25), heroes[0].BaseStr)
	assert.False(t, heroes[0].BaseAgi.Valid())
}
