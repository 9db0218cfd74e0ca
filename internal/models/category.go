package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryRow distinguishes the purpose of a category record.
type CategoryRow int

const (
	CategoryRowIdentity CategoryRow = 1 // The client identity record used for history display
	CategoryRowProject  CategoryRow = 3 // A project record
)

// Category is a secondary record used for transaction history and icon
// display. It references its client explicitly instead of the historical
// join on a concatenated name string.
type Category struct {
	DefaultModel
	Client   Client          `json:"-"`
	ClientID uuid.UUID       `gorm:"uniqueIndex:category_client_id_row,where:row = 1"`
	Row      CategoryRow     `gorm:"uniqueIndex:category_client_id_row,where:row = 1"`
	Title    string
	Visible  bool
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Icon     string
	Color    string
}

// BeforeSave trims whitespace from all strings.
//
// Validation lives in BeforeCreate and BeforeUpdate: BeforeSave also runs
// for batch updates on a zero-value model, e.g. the visibility cascade.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	return nil
}

// BeforeCreate verifies the row discriminant and the client reference, and
// derives the title from the client name when it is not set explicitly.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	if c.Row != CategoryRowIdentity && c.Row != CategoryRowProject {
		return ErrCategoryRowInvalid
	}

	// The lookup runs in its own session so that its error does not get
	// added to the create statement a second time
	var client Client
	err := tx.Session(&gorm.Session{NewDB: true}).First(&client, c.ClientID).Error
	if err != nil {
		return err
	}

	if c.Title == "" {
		c.Title = client.FullName()
	}

	return nil
}

// BeforeUpdate verifies the row discriminant and the client reference
// before committing an update.
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Row") {
		toSave := tx.Statement.Dest.(Category)
		if toSave.Row != CategoryRowIdentity && toSave.Row != CategoryRowProject {
			return ErrCategoryRowInvalid
		}
	}

	if tx.Statement.Changed("ClientID") {
		toSave := tx.Statement.Dest.(Category)
		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies that the referenced client exists.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.Session(&gorm.Session{NewDB: true}).First(&Client{}, toSave.ClientID).Error
}

// Transactions returns all transactions for this category.
func (c Category) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(&Transaction{CategoryID: &c.ID}).Order("date DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Returns all categories on this instance for export
func (Category) Export() (json.RawMessage, error) {
	var categories []Category
	err := DB.Unscoped().Where(&Category{}).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&categories)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
