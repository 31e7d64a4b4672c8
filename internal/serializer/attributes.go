package serializer

import (
	"strings"

	"github.com/meur/dotasource/internal/i18n"
	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/raw"
	"github.com/meur/dotasource/internal/text"
)

// CustomAttributes builds tooltip rows for every attribute record that has a
// DOTA_Tooltip_ability_<entityKey>_<field> token. Records without one are
// dropped. A nil attribute list yields nil.
func CustomAttributes(attrs raw.Attributes, tokens i18n.Tokens, entityKey string) []models.CustomAttribute {
	if attrs == nil {
		return nil
	}

	rows := []models.CustomAttribute{}
	for _, rec := range attrs {
		key, header, ok := tooltipField(rec, tokens, entityKey)
		if !ok {
			continue
		}

		value, _ := rec.String(key)
		row := models.CustomAttribute{
			Key:     key,
			Value:   value,
			Scepter: strings.HasSuffix(key, "_scepter"),
		}

		if strings.HasPrefix(header, "%") {
			header = header[1:]
			row.Suffix = "%"
		}
		if strings.HasPrefix(header, "+$") {
			// unresolved variables leave the header empty
			header, _ = tokens.Variable(header[2:])
			row.Prefix = "+"
		}

		row.Header = text.RemoveEscapedNewlines(text.StripTags(header))
		rows = append(rows, row)
	}
	return rows
}

// tooltipField finds the first field of rec with a tooltip token.
func tooltipField(rec *raw.Record, tokens i18n.Tokens, entityKey string) (string, string, bool) {
	for _, f := range rec.Fields() {
		if f.Name == "" {
			continue
		}
		if header, ok := tokens.Tooltip(entityKey, f.Name); ok {
			return f.Name, header, true
		}
	}
	return "", "", false
}
