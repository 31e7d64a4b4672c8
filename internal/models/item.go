package models

// Item is a serialized shop item or recipe.
type Item struct {
	ID               int                `json:"id"`
	Key              string             `json:"key"`
	Name             string             `json:"name,omitempty"`
	Description      []DescriptionBlock `json:"description,omitzero"`
	Notes            []string           `json:"notes"`
	Lore             string             `json:"lore,omitempty"`
	Recipe           bool               `json:"recipe"`
	Cost             *int               `json:"cost,omitempty"`
	HomeShop         bool               `json:"home_shop"`
	SideShop         bool               `json:"side_shop"`
	SecretShop       bool               `json:"secret_shop"`
	Cooldown         *Number            `json:"cooldown,omitempty"`
	ManaCost         *Number            `json:"mana_cost,omitempty"`
	CustomAttributes []CustomAttribute  `json:"custom_attributes,omitzero"`
	Requirements     []string           `json:"requirements"`
	Upgrades         []string           `json:"upgrades"`
}

// DescriptionBlock is one segment of an item description: a plain hint, or
// a headed block such as an active or passive effect.
type DescriptionBlock struct {
	Type   string   `json:"type"`
	Header string   `json:"header,omitempty"`
	Body   []string `json:"body"`
}
