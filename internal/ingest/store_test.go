package ingest

import (
	"testing"

	"github.com/optcg-tools/catalog/backend/internal/models"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
)

func TestSaveSets_InsertOrIgnore(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	saved, err := store.SaveSets([]models.Set{{SetID: "OP01", SetName: "Romance Dawn"}})
	if err != nil {
		t.Fatalf("SaveSets failed: %v", err)
	}
	if saved != 1 {
		t.Errorf("expected 1 set saved, got %d", saved)
	}

	// Saving the same set with a different name must not overwrite
	if _, err := store.SaveSets([]models.Set{{SetID: "OP01", SetName: "Renamed"}}); err != nil {
		t.Fatalf("second SaveSets failed: %v", err)
	}

	var s models.Set
	if err := db.First(&s, "set_id = ?", "OP01").Error; err != nil {
		t.Fatalf("failed to read set: %v", err)
	}
	if s.SetName != "Romance Dawn" {
		t.Errorf("expected existing set_name to be kept, got %q", s.SetName)
	}

	var count int64
	db.Model(&models.Set{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 set row, got %d", count)
	}
}

func TestSaveSets_Empty(t *testing.T) {
	db := newTestDB(t)
	saved, err := NewStore(db).SaveSets(nil)
	if err != nil {
		t.Fatalf("SaveSets failed on empty input: %v", err)
	}
	if saved != 0 {
		t.Errorf("expected 0 saved, got %d", saved)
	}
}

func TestSaveCards_LeaderNormalization(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	if _, err := store.SaveSets([]models.Set{{SetID: "OP01", SetName: "Romance Dawn"}}); err != nil {
		t.Fatalf("SaveSets failed: %v", err)
	}

	raw := optcg.RawCard{
		"id":        "OP01-001",
		"card_name": "Monkey.D.Luffy",
		"card_type": "Leader",
		"card_cost": float64(5),
		"effect":    nil,
	}
	saved, err := store.SaveCards([]optcg.RawCard{raw}, "OP01")
	if err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}
	if saved != 1 {
		t.Errorf("expected 1 card saved, got %d", saved)
	}

	var c models.Card
	if err := db.First(&c, "card_set_id = ?", "OP01-001").Error; err != nil {
		t.Fatalf("failed to read card: %v", err)
	}
	if c.CardName != "Monkey.D.Luffy" {
		t.Errorf("expected name 'Monkey.D.Luffy', got %q", c.CardName)
	}
	if c.CardText == nil || *c.CardText != "No Effect" {
		t.Errorf("expected card_text 'No Effect', got %v", c.CardText)
	}
	if c.CardCost != -2 {
		t.Errorf("expected leader cost override -2, got %d", c.CardCost)
	}
	if c.SetID != "OP01" {
		t.Errorf("expected set_id 'OP01', got %q", c.SetID)
	}
}

func TestSaveCards_InsertOrReplace(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	if _, err := store.SaveSets([]models.Set{{SetID: "OP01", SetName: "Romance Dawn"}}); err != nil {
		t.Fatalf("SaveSets failed: %v", err)
	}

	first := optcg.RawCard{
		"id":        "OP01-025",
		"card_name": "Nami",
		"card_type": "Character",
		"card_cost": float64(1),
		"effect":    "Draw a card",
		"rarity":    "R",
	}
	if _, err := store.SaveCards([]optcg.RawCard{first}, "OP01"); err != nil {
		t.Fatalf("first SaveCards failed: %v", err)
	}

	// Re-ingest the same card with new field values; they must fully replace
	// the old row, then the correction rules re-apply.
	second := optcg.RawCard{
		"id":        "OP01-025",
		"card_name": "Nami",
		"card_type": "Event",
		"card_cost": float64(2),
		"effect":    nil,
		"rarity":    "SR",
	}
	if _, err := store.SaveCards([]optcg.RawCard{second}, "OP01"); err != nil {
		t.Fatalf("second SaveCards failed: %v", err)
	}

	var c models.Card
	if err := db.First(&c, "card_set_id = ?", "OP01-025").Error; err != nil {
		t.Fatalf("failed to read card: %v", err)
	}
	if c.Rarity != "SR" {
		t.Errorf("expected replaced rarity 'SR', got %q", c.Rarity)
	}
	if c.CardType != "Event" {
		t.Errorf("expected replaced card_type 'Event', got %q", c.CardType)
	}
	if c.CardPower != -1 {
		t.Errorf("expected event power sentinel -1 after re-correction, got %d", c.CardPower)
	}
	if c.CardText == nil || *c.CardText != "No Effect" {
		t.Errorf("expected 'No Effect' after replacement cleared the text, got %v", c.CardText)
	}

	var count int64
	db.Model(&models.Card{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 card row after upsert, got %d", count)
	}
}

func TestSaveCards_DataPatchOverridesCounter(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	if _, err := store.SaveSets([]models.Set{{SetID: "OP01", SetName: "Romance Dawn"}}); err != nil {
		t.Fatalf("SaveSets failed: %v", err)
	}

	raw := optcg.RawCard{
		"card_set_id":    "OP01-108",
		"card_name":      "Buggy",
		"card_type":      "Character",
		"counter_amount": float64(999),
		"effect":         "x",
	}
	if _, err := store.SaveCards([]optcg.RawCard{raw}, "OP01"); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	var c models.Card
	if err := db.First(&c, "card_set_id = ?", "OP01-108").Error; err != nil {
		t.Fatalf("failed to read card: %v", err)
	}
	if c.CounterAmount == nil {
		t.Error("expected patched counter 1000 regardless of upstream value, got nil")
	} else if *c.CounterAmount != 1000 {
		t.Errorf("expected patched counter 1000 regardless of upstream value, got %d", *c.CounterAmount)
	}
}

func TestSaveCards_CorrectionsCoverWholeTable(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	if _, err := store.SaveSets([]models.Set{{SetID: "OP01"}, {SetID: "OP02"}}); err != nil {
		t.Fatalf("SaveSets failed: %v", err)
	}

	// Seed a defective row as if a prior batch had gone bad, then save an
	// unrelated set. The rules run over the whole table and must fix it.
	seedCards(t, db, []models.Card{
		{CardSetID: "OP01-050", CardType: "Event", CardPower: 7000, SetID: "OP01"},
	})

	other := optcg.RawCard{"id": "OP02-001", "card_type": "Character", "effect": "x"}
	if _, err := store.SaveCards([]optcg.RawCard{other}, "OP02"); err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}

	var c models.Card
	if err := db.First(&c, "card_set_id = ?", "OP01-050").Error; err != nil {
		t.Fatalf("failed to read card: %v", err)
	}
	if c.CardPower != -1 {
		t.Errorf("expected earlier batch's event power fixed to -1, got %d", c.CardPower)
	}
}

func TestSaveCards_SkipsRecordsWithoutID(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	saved, err := store.SaveCards([]optcg.RawCard{{"card_name": "No ID"}}, "OP01")
	if err != nil {
		t.Fatalf("SaveCards failed: %v", err)
	}
	if saved != 0 {
		t.Errorf("expected 0 cards saved, got %d", saved)
	}
}
