package ingest

import (
	"github.com/optcg-tools/catalog/backend/internal/models"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
	"gorm.io/gorm"
)

// Correction rules patch known-bad upstream data. They are deterministic and
// idempotent: reapplying the full sequence is a no-op, so every save runs all
// of them over the whole cards table in case the upstream re-serves a defect
// for a set ingested earlier.
//
// Two distinct categories, kept separate on purpose:
//
//   - RawRules fix layout bugs in the upstream record itself (a value landed
//     in the wrong field). They run during mapping, before the record is
//     typed, because the misplaced value is unrepresentable afterward.
//   - NormalizationRules and DataPatches run as table-wide updates inside the
//     save transaction, in declaration order.

// RawRule patches a card while its loose upstream record is still visible.
type RawRule struct {
	Name    string
	Applies func(raw optcg.RawCard) bool
	Apply   func(c *models.Card)
}

// TableRule is a (predicate, patch) pair applied over the whole cards table.
type TableRule struct {
	Name  string
	Where string
	Args  []any
	Patch map[string]any
}

var RawRules = []RawRule{
	{
		// Upstream serves one card with its sub-type string shifted into the
		// cost field. The card's real cost is 0.
		Name: "cost-field-shift",
		Applies: func(raw optcg.RawCard) bool {
			s, ok := raw["card_cost"].(string)
			return ok && s == "Former Roger Pirates"
		},
		Apply: func(c *models.Card) {
			c.CardCost = 0
			c.SubTypes = "Former Roger Pirates"
		},
	},
}

// NormalizationRules enforce the schema-wide invariants: no missing card text,
// sentinel power for Events and Stages, sentinel cost for Leaders.
var NormalizationRules = []TableRule{
	{
		Name:  "missing-text",
		Where: "card_text IS NULL OR card_text = ?",
		Args:  []any{"NULL"},
		Patch: map[string]any{"card_text": "No Effect"},
	},
	{
		Name:  "event-power",
		Where: "card_type = ?",
		Args:  []any{"Event"},
		Patch: map[string]any{"card_power": -1},
	},
	{
		Name:  "stage-power",
		Where: "card_type = ?",
		Args:  []any{"Stage"},
		Patch: map[string]any{"card_power": -1},
	},
	{
		Name:  "leader-cost",
		Where: "card_type = ?",
		Args:  []any{"Leader"},
		Patch: map[string]any{"card_cost": -2},
	},
}

// DataPatches fix individual cards the upstream serves with wrong stats,
// keyed by exact card code.
var DataPatches = []TableRule{
	{
		Name:  "OP01-108-counter",
		Where: "card_set_id = ?",
		Args:  []any{"OP01-108"},
		Patch: map[string]any{"counter_amount": 1000},
	},
	{
		Name:  "OP06-051-counter",
		Where: "card_set_id = ?",
		Args:  []any{"OP06-051"},
		Patch: map[string]any{"counter_amount": 2000},
	},
	{
		Name:  "OP09-093-stats",
		Where: "card_set_id = ?",
		Args:  []any{"OP09-093"},
		Patch: map[string]any{"card_power": 12000, "card_cost": 10},
	},
}

// ApplyCorrections runs every table rule over the cards table in order.
// Callers are expected to pass a transaction handle.
func ApplyCorrections(tx *gorm.DB) error {
	for _, group := range [][]TableRule{NormalizationRules, DataPatches} {
		for _, rule := range group {
			if err := tx.Model(&models.Card{}).Where(rule.Where, rule.Args...).Updates(rule.Patch).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
