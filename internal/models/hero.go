package models

// Hero is a serialized hero with its base-hero defaults applied.
type Hero struct {
	ID                    int      `json:"id"`
	Key                   string   `json:"key"`
	Name                  string   `json:"name,omitempty"`
	Roles                 []string `json:"roles"`
	Complexity            Number   `json:"complexity"`
	PrimaryAttribute      string   `json:"primary_attribute,omitempty"` // "str", "agi", "int"
	BaseStr               Number   `json:"base_str"`
	BaseAgi               Number   `json:"base_agi"`
	BaseInt               Number   `json:"base_int"`
	StrGain               Number   `json:"str_gain"`
	AgiGain               Number   `json:"agi_gain"`
	IntGain               Number   `json:"int_gain"`
	BaseHealth            Number   `json:"base_health"`
	BaseMana              Number   `json:"base_mana"`
	BaseHealthRegen       Number   `json:"base_health_regen"`
	BaseManaRegen         Number   `json:"base_mana_regen"`
	AttackType            string   `json:"attack_type,omitempty"` // "melee", "ranged"
	AttackRange           Number   `json:"attack_range"`
	AttackRate            Number   `json:"attack_rate"`
	BaseAttackMin         Number   `json:"base_attack_min"`
	BaseAttackMax         Number   `json:"base_attack_max"`
	BaseArmor             Number   `json:"base_armor"`
	BaseMagicalResistance Number   `json:"base_magical_resistance"`
	MovementSpeed         Number   `json:"movement_speed"`
	MovementTurnRate      Number   `json:"movement_turn_rate"`
}
