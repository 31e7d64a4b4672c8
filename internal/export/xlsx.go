// Package export writes serialized records to spreadsheets.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/meur/dotasource/internal/models"
	"github.com/meur/dotasource/internal/serializer"
)

const defaultSheet = "Sheet1"

var (
	heroHeader = []interface{}{
		"ID", "Key", "Name", "Roles", "Complexity", "Primary Attribute",
		"Base Str", "Base Agi", "Base Int", "Str Gain", "Agi Gain", "Int Gain",
		"Base Health", "Base Mana", "Health Regen", "Mana Regen",
		"Attack Type", "Attack Range", "Attack Rate", "Attack Min", "Attack Max",
		"Armor", "Magic Resistance", "Move Speed", "Turn Rate",
	}
	abilityHeader = []interface{}{
		"ID", "Key", "Name", "Type", "Team Target", "Unit Targets", "Damage Type",
		"Pierces Spell Immunity", "Cast Range", "Cast Point", "Channel Time",
		"Duration", "Damage", "Cooldown", "Mana Cost", "Scepter Upgrade",
		"Granted By Scepter", "Description",
	}
	itemHeader = []interface{}{
		"ID", "Key", "Name", "Recipe", "Cost", "Home Shop", "Side Shop",
		"Secret Shop", "Cooldown", "Mana Cost", "Requirements", "Upgrades", "Lore",
	}
)

// Workbook builds a workbook with one sheet per result, named after its kind.
func Workbook(results ...serializer.Result) (*excelize.File, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no results to export")
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, res := range results {
		sheet := sheetName(res.Kind)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, err
		}

		header, rows, err := tabulate(res)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := writeSheet(f, sheet, header, rows, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteFile builds the workbook and saves it to path.
func WriteFile(path string, results ...serializer.Result) error {
	f, err := Workbook(results...)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func sheetName(kind serializer.Kind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func tabulate(res serializer.Result) ([]interface{}, [][]interface{}, error) {
	switch records := res.Records.(type) {
	case []models.Hero:
		rows := make([][]interface{}, 0, len(records))
		for _, h := range records {
			rows = append(rows, heroRow(h))
		}
		return heroHeader, rows, nil
	case []models.Ability:
		rows := make([][]interface{}, 0, len(records))
		for _, a := range records {
			rows = append(rows, abilityRow(a))
		}
		return abilityHeader, rows, nil
	case []models.Item:
		rows := make([][]interface{}, 0, len(records))
		for _, it := range records {
			rows = append(rows, itemRow(it))
		}
		return itemHeader, rows, nil
	}
	return nil, nil, fmt.Errorf("%w: cannot export %q", serializer.ErrUnknownKind, string(res.Kind))
}

func heroRow(h models.Hero) []interface{} {
	return []interface{}{
		h.ID, h.Key, h.Name, strings.Join(h.Roles, ", "), num(h.Complexity), h.PrimaryAttribute,
		num(h.BaseStr), num(h.BaseAgi), num(h.BaseInt), num(h.StrGain), num(h.AgiGain), num(h.IntGain),
		num(h.BaseHealth), num(h.BaseMana), num(h.BaseHealthRegen), num(h.BaseManaRegen),
		h.AttackType, num(h.AttackRange), num(h.AttackRate), num(h.BaseAttackMin), num(h.BaseAttackMax),
		num(h.BaseArmor), num(h.BaseMagicalResistance), num(h.MovementSpeed), num(h.MovementTurnRate),
	}
}

func abilityRow(a models.Ability) []interface{} {
	row := []interface{}{a.ID, a.Key, a.Name, a.Type}
	d := a.AbilityDetails
	if d == nil {
		// talents
		return row
	}
	var pierces interface{}
	if d.PiercesSpellImmunity != nil {
		pierces = *d.PiercesSpellImmunity
	}
	return append(row,
		d.TeamTarget, strings.Join(d.UnitTargets, ", "), d.DamageType, pierces,
		floats(d.CastRange), floats(d.CastPoint), floats(d.ChannelTime),
		floats(d.Duration), floats(d.Damage), floats(d.Cooldown), floats(d.ManaCost),
		d.HasScepterUpgrade, d.IsGrantedByScepter, strings.Join(d.Description, "\n"),
	)
}

func itemRow(it models.Item) []interface{} {
	var cost, cooldown, manaCost interface{}
	if it.Cost != nil {
		cost = *it.Cost
	}
	if it.Cooldown != nil {
		cooldown = num(*it.Cooldown)
	}
	if it.ManaCost != nil {
		manaCost = num(*it.ManaCost)
	}
	return []interface{}{
		it.ID, it.Key, it.Name, it.Recipe, cost, it.HomeShop, it.SideShop,
		it.SecretShop, cooldown, manaCost, strings.Join(it.Requirements, ", "),
		strings.Join(it.Upgrades, ", "), it.Lore,
	}
}

// num leaves the cell empty for absent values.
func num(n models.Number) interface{} {
	if !n.Valid() {
		return nil
	}
	return float64(n)
}

func floats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " / ")
}
