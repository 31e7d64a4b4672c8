package models

// Ability types
const (
	AbilityTypeBasic    = "basic"
	AbilityTypeUltimate = "ultimate"
	AbilityTypeTalent   = "talent"
)

// Ability is a serialized hero ability. Talents only carry the four header
// fields; every other ability embeds AbilityDetails.
type Ability struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
	Type string `json:"type"`

	*AbilityDetails
}

// AbilityDetails holds the fields computed for non-talent abilities.
type AbilityDetails struct {
	Description          []string          `json:"description,omitzero"`
	Notes                []string          `json:"notes"`
	Lore                 string            `json:"lore,omitempty"`
	TeamTarget           string            `json:"team_target,omitempty"`
	UnitTargets          []string          `json:"unit_targets,omitzero"`
	DamageType           string            `json:"damage_type,omitempty"`
	PiercesSpellImmunity *bool             `json:"pierces_spell_immunity,omitempty"`
	CastRange            []float64         `json:"cast_range,omitzero"`
	CastPoint            []float64         `json:"cast_point,omitzero"`
	ChannelTime          []float64         `json:"channel_time,omitzero"`
	Duration             []float64         `json:"duration,omitzero"`
	Damage               []float64         `json:"damage,omitzero"`
	Cooldown             []float64         `json:"cooldown,omitzero"`
	ManaCost             []float64         `json:"mana_cost,omitzero"`
	HasScepterUpgrade    bool              `json:"has_scepter_upgrade"`
	IsGrantedByScepter   bool              `json:"is_granted_by_scepter"`
	CustomAttributes     []CustomAttribute `json:"custom_attributes,omitzero"`
}

// CustomAttribute is one tooltip row derived from an attribute record.
type CustomAttribute struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Scepter bool   `json:"scepter"`
	Header  string `json:"header"`
	Prefix  string `json:"prefix,omitempty"`
	Suffix  string `json:"suffix,omitempty"`
}
