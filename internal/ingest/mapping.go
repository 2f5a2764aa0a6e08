package ingest

import (
	"strconv"

	"github.com/optcg-tools/catalog/backend/internal/models"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
)

// Upstream field names vary between sets. Each target field reads from an
// ordered candidate list, first present (non-null, non-empty) wins.
var (
	cardIDKeys    = []string{"card_set_id", "id"}
	cardTextKeys  = []string{"effect", "text", "card_text"}
	cardImageKeys = []string{"image_url", "card_image"}
)

// MapCard converts a loose upstream record into a Card tagged with setID.
// Pure function: no I/O, no database. Raw-record correction rules (upstream
// layout bugs, see corrections.go) are applied here because they act on values
// that no longer exist once the record is typed.
func MapCard(raw optcg.RawCard, setID string) models.Card {
	c := models.Card{
		CardSetID:     firstString(raw, cardIDKeys),
		CardName:      stringField(raw, "card_name"),
		CardCost:      intField(raw, "card_cost"),
		CardPower:     intField(raw, "card_power"),
		Attribute:     nullableString(raw, "attribute"),
		CounterAmount: nullableInt(raw, "counter_amount"),
		CardColor:     stringField(raw, "card_color"),
		CardType:      stringField(raw, "card_type"),
		SubTypes:      stringField(raw, "sub_types"),
		CardText:      firstNullableString(raw, cardTextKeys),
		Rarity:        stringField(raw, "rarity"),
		CardImage:     firstString(raw, cardImageKeys),
		SetID:         setID,
	}

	for _, rule := range RawRules {
		if rule.Applies(raw) {
			rule.Apply(&c)
		}
	}

	return c
}

func firstString(raw optcg.RawCard, keys []string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstNullableString(raw optcg.RawCard, keys []string) *string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

func stringField(raw optcg.RawCard, key string) string {
	s, _ := raw[key].(string)
	return s
}

func nullableString(raw optcg.RawCard, key string) *string {
	if s, ok := raw[key].(string); ok {
		return &s
	}
	return nil
}

func intField(raw optcg.RawCard, key string) int {
	n, _ := asInt(raw[key])
	return n
}

func nullableInt(raw optcg.RawCard, key string) *int {
	if n, ok := asInt(raw[key]); ok {
		return &n
	}
	return nil
}

// asInt coerces the value shapes the upstream actually serves: JSON numbers
// (float64 after decoding) and numeric strings.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
