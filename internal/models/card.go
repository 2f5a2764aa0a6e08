package models

// Card is one printing of a card, keyed by its per-printing code
// (e.g. "OP01-001"). Column names match the upstream API field names so the
// SQLite schema lines up with what the ingest pipeline receives.
//
// CardPower is -1 for Event and Stage cards and CardCost is -2 for Leaders;
// those stats are not meaningful for the type and the sentinels are written by
// the normalization rules after every ingest batch.
type Card struct {
	CardSetID     string  `json:"card_set_id" gorm:"column:card_set_id;primaryKey"`
	CardName      string  `json:"card_name" gorm:"column:card_name;index"`
	CardCost      int     `json:"card_cost" gorm:"column:card_cost"`
	CardPower     int     `json:"card_power" gorm:"column:card_power"`
	Attribute     *string `json:"attribute" gorm:"column:attribute"`
	CounterAmount *int    `json:"counter_amount" gorm:"column:counter_amount"`
	CardColor     string  `json:"card_color" gorm:"column:card_color"`
	CardType      string  `json:"card_type" gorm:"column:card_type;index"`
	SubTypes      string  `json:"sub_types" gorm:"column:sub_types"`
	CardText      *string `json:"card_text" gorm:"column:card_text"`
	Rarity        string  `json:"rarity" gorm:"column:rarity"`
	CardImage     string  `json:"card_image" gorm:"column:card_image"`
	SetID         string  `json:"set_id" gorm:"column:set_id;index"`

	// Declarative FK to sets.set_id; ingestion never checks it actively.
	Set *Set `json:"-" gorm:"foreignKey:SetID;references:SetID"`
}

func (Card) TableName() string {
	return "cards"
}
