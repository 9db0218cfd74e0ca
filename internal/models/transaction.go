package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single entry in a category's history.
//
// The category reference is optional so that icon-only client deletion can
// keep the history around with the reference cleared.
type Transaction struct {
	DefaultModel
	Category   *Category  `json:"-"`
	CategoryID *uuid.UUID `gorm:"constraint:OnDelete:SET NULL"`
	Date       time.Time
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note       string
}

// BeforeSave sets a default date and trims the note.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	}

	// Normalize to UTC to keep date comparisons consistent
	t.Date = t.Date.In(time.UTC)

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return t.checkIntegrity(tx, *t)
}

// BeforeUpdate verifies the category reference before committing an
// update. The destination is a Transaction for the API update paths and a
// map for column updates, both need to be handled.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	if !tx.Statement.Changed("CategoryID") {
		return nil
	}

	switch toSave := tx.Statement.Dest.(type) {
	case Transaction:
		return t.checkIntegrity(tx, toSave)
	case map[string]interface{}:
		if id, ok := toSave["category_id"].(*uuid.UUID); ok {
			return t.checkIntegrity(tx, Transaction{CategoryID: id})
		}
	}

	return nil
}

// checkIntegrity verifies that a set category reference points to an
// existing category. A cleared reference is always valid.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	if toSave.CategoryID == nil {
		return nil
	}

	return tx.Session(&gorm.Session{NewDB: true}).First(&Category{}, *toSave.CategoryID).Error
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	var transactions []Transaction
	err := DB.Unscoped().Where(&Transaction{}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&transactions)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
