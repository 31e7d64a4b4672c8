// Package i18n wraps the flat localization token table.
package i18n

import (
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	upperTooltipPrefix = "DOTA_Tooltip_Ability_"
	tooltipPrefix      = "DOTA_Tooltip_ability_"
	variablePrefix     = "dota_ability_variable_"
)

var (
	ErrInvalidJSON   = errors.New("invalid localization JSON")
	ErrMissingTokens = errors.New("localization has no lang.Tokens table")
)

// Tokens maps a token name to its display string.
type Tokens map[string]string

// Load decodes a raw localization document of the form
// {"lang": {"Tokens": {...}}} and returns the normalized table.
func Load(data []byte) (Tokens, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	v := gjson.GetBytes(data, "lang.Tokens")
	if !v.IsObject() {
		return nil, ErrMissingTokens
	}
	tokens := make(Tokens)
	v.ForEach(func(k, val gjson.Result) bool {
		tokens[k.String()] = val.String()
		return true
	})
	return tokens.Normalize(), nil
}

// Normalize returns a copy in which every DOTA_Tooltip_Ability_ token is
// also reachable under its DOTA_Tooltip_ability_ spelling. The capitalized
// entry is authoritative and overwrites an existing lowercase one.
func (t Tokens) Normalize() Tokens {
	out := make(Tokens, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range t {
		if strings.Contains(k, upperTooltipPrefix) {
			out[strings.Replace(k, upperTooltipPrefix, tooltipPrefix, 1)] = v
		}
	}
	return out
}

// Lookup returns the token with the exact name.
func (t Tokens) Lookup(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// Tooltip returns DOTA_Tooltip_ability_<key>, or
// DOTA_Tooltip_ability_<key>_<suffix> when suffix is set.
func (t Tokens) Tooltip(key, suffix string) (string, bool) {
	return t.Lookup(TooltipKey(key, suffix))
}

// Variable resolves a dota_ability_variable_<name> token.
func (t Tokens) Variable(name string) (string, bool) {
	return t.Lookup(variablePrefix + name)
}

// TooltipKey builds the token name used by Tooltip.
func TooltipKey(key, suffix string) string {
	if suffix == "" {
		return tooltipPrefix + key
	}
	return tooltipPrefix + key + "_" + suffix
}
