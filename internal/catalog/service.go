// Package catalog is the read-only query layer over the sets and cards
// tables.
package catalog

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/optcg-tools/catalog/backend/internal/metrics"
	"github.com/optcg-tools/catalog/backend/internal/models"
)

// cardCacheSize bounds the single-card lookup cache. List endpoints always
// scan the table.
const cardCacheSize = 256

// ErrCardNotFound is returned by GetCard for an unknown card code.
var ErrCardNotFound = errors.New("card not found")

type Service struct {
	db        *gorm.DB
	cardCache *lru.Cache[string, models.Card]
}

func NewService(db *gorm.DB) (*Service, error) {
	cardCache, err := lru.New[string, models.Card](cardCacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{db: db, cardCache: cardCache}, nil
}

// ListSets returns every set. No ordering is guaranteed; callers get whatever
// the storage engine yields.
func (s *Service) ListSets() ([]models.Set, error) {
	sets := make([]models.Set, 0)
	if err := s.db.Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// ListCards returns every card. Same ordering caveat as ListSets.
func (s *Service) ListCards() ([]models.Card, error) {
	cards := make([]models.Card, 0)
	if err := s.db.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// GetCard returns one card by its card_set_id, cache first. Serving never
// overlaps an ingestion run, so cached entries cannot go stale mid-process.
func (s *Service) GetCard(cardSetID string) (models.Card, error) {
	if card, ok := s.cardCache.Get(cardSetID); ok {
		metrics.CardLookupCacheHits.Inc()
		return card, nil
	}
	metrics.CardLookupCacheMisses.Inc()

	var card models.Card
	err := s.db.First(&card, "card_set_id = ?", cardSetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Card{}, ErrCardNotFound
	}
	if err != nil {
		return models.Card{}, err
	}

	s.cardCache.Add(cardSetID, card)
	return card, nil
}
