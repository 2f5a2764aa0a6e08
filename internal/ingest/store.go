package ingest

import (
	"log"

	"github.com/optcg-tools/catalog/backend/internal/models"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the ingest pipeline's write path. It is the sole writer to the
// database; the serving layer only reads.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveSets inserts sets with insert-or-ignore semantics: a set whose set_id
// already exists keeps its stored name. Returns the number of rows actually
// inserted (informational only).
func (s *Store) SaveSets(sets []models.Set) (int, error) {
	if len(sets) == 0 {
		return 0, nil
	}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sets)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

// SaveCards maps the raw batch onto the schema, upserts every card with
// insert-or-replace semantics tagged with setID, then applies the correction
// rules over the entire cards table. The whole operation is one transaction:
// on failure nothing is visible, not even partially applied corrections.
func (s *Store) SaveCards(cards []optcg.RawCard, setID string) (int, error) {
	mapped := make([]models.Card, 0, len(cards))
	for _, raw := range cards {
		c := MapCard(raw, setID)
		if c.CardSetID == "" {
			log.Printf("Skipping card with no identifier in set %s", setID)
			continue
		}
		mapped = append(mapped, c)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(mapped) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&mapped).Error; err != nil {
				return err
			}
		}
		return ApplyCorrections(tx)
	})
	if err != nil {
		return 0, err
	}
	return len(mapped), nil
}

// ListSetIDs returns the identifiers of every known set, for the driver loop.
func (s *Store) ListSetIDs() ([]string, error) {
	var ids []string
	if err := s.db.Model(&models.Set{}).Pluck("set_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
