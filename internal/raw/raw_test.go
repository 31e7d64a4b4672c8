package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"DOTAAbilities": {
		"Version": "1",
		"zeta": {"ID": "3"},
		"alpha": {"ID": "1"},
		"mid": {"ID": "2"}
	}}`), "DOTAAbilities")
	require.NoError(t, err)

	var keys []string
	for _, e := range doc.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"Version", "zeta", "alpha", "mid"}, keys)

	rec, ok := doc.Lookup("alpha")
	require.True(t, ok)
	id, ok := rec.String("ID")
	require.True(t, ok)
	assert.Equal(t, "1", id)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"DOTAHeroes": {}}`), "DOTAAbilities")
	assert.ErrorIs(t, err, ErrMissingRoot)

	_, err = Parse([]byte(`{"DOTAHeroes": `), "DOTAHeroes")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestRecord_String(t *testing.T) {
	t.Parallel()

	rec := RecordFromJSON(`{"s": "text", "n": 12.5, "b": true, "z": null}`)

	s, ok := rec.String("s")
	assert.True(t, ok)
	assert.Equal(t, "text", s)

	n, ok := rec.String("n")
	assert.True(t, ok)
	assert.Equal(t, "12.5", n)

	b, _ := rec.String("b")
	assert.Equal(t, "true", b)

	_, ok = rec.String("z")
	assert.False(t, ok)
	_, ok = rec.String("missing")
	assert.False(t, ok)
}

func TestRecord_Merge(t *testing.T) {
	t.Parallel()

	base := RecordFromJSON(`{"AttributeBaseStrength": "0", "MovementSpeed": "300", "Role": ""}`)
	own := RecordFromJSON(`{"Role": "Carry", "AttributeBaseStrength": "22"}`)

	merged := base.Merge(own)

	str, _ := merged.String("AttributeBaseStrength")
	assert.Equal(t, "22", str)
	ms, _ := merged.String("MovementSpeed")
	assert.Equal(t, "300", ms)
	assert.Equal(t, 3, merged.Len())

	var nilBase *Record
	assert.Equal(t, 2, nilBase.Merge(own).Len())
}

func TestAttributes(t *testing.T) {
	t.Parallel()

	fromObject := AttributesOf(RecordFromJSON(`{"AbilitySpecial": {
		"01": {"var_type": "FIELD_INTEGER", "damage": "10"},
		"02": {"var_type": "FIELD_FLOAT", "damage": "20", "radius": "300"}
	}}`), "AbilitySpecial")
	require.Len(t, fromObject, 2)

	v, ok := fromObject.Value("damage")
	assert.True(t, ok)
	assert.Equal(t, "10", v)
	v, _ = fromObject.Value("radius")
	assert.Equal(t, "300", v)

	fromArray := AttributesOf(RecordFromJSON(`{"AbilitySpecial": [{"damage": "5"}]}`), "AbilitySpecial")
	require.Len(t, fromArray, 1)

	assert.Nil(t, AttributesOf(RecordFromJSON(`{}`), "AbilitySpecial"))
}
