package models

// Set is a released card product/expansion, keyed by its stable upstream code
// (e.g. "OP01").
type Set struct {
	SetID   string `json:"set_id" gorm:"column:set_id;primaryKey"`
	SetName string `json:"set_name" gorm:"column:set_name"`
}

func (Set) TableName() string {
	return "sets"
}
