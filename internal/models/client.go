package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ClientStatus is the construction status of a client's project.
type ClientStatus string

const (
	ClientStatusBuilding ClientStatus = "building" // Construction in progress
	ClientStatusDeposit  ClientStatus = "deposit"  // Deposit paid, construction not started
	ClientStatusBuilt    ClientStatus = "built"    // Construction finished
)

// ClientStatuses returns all valid client statuses.
func ClientStatuses() []ClientStatus {
	return []ClientStatus{ClientStatusBuilding, ClientStatusDeposit, ClientStatusBuilt}
}

// Client represents a customer owning a construction project.
type Client struct {
	DefaultModel
	FirstName           string
	LastName            string
	ClientNumber        string `gorm:"uniqueIndex"`
	ConstructionAddress string
	ObjectName          string
	Status              ClientStatus
	Visible             bool
	Year                int
}

// FullName is the display name of the client. It is also the title
// of the client's categories.
func (c Client) FullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.LastName, c.FirstName))
}

// BeforeSave trims whitespace from all strings and verifies the status.
func (c *Client) BeforeSave(_ *gorm.DB) error {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.ClientNumber = strings.TrimSpace(c.ClientNumber)
	c.ConstructionAddress = strings.TrimSpace(c.ConstructionAddress)
	c.ObjectName = strings.TrimSpace(c.ObjectName)

	if c.Status == "" {
		c.Status = ClientStatusBuilding
	}

	if !slices.Contains(ClientStatuses(), c.Status) {
		return ErrClientStatusInvalid
	}

	return nil
}

// BeforeUpdate verifies the incoming status. BeforeSave only sees the
// loaded model, the update values are in the statement destination.
func (c *Client) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Status") {
		toSave := tx.Statement.Dest.(Client)
		if !slices.Contains(ClientStatuses(), toSave.Status) {
			return ErrClientStatusInvalid
		}
	}

	return nil
}

// Categories returns all categories referencing this client.
func (c Client) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category

	err := db.Where(&Category{ClientID: c.ID}).Order("row ASC, title ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// IdentityCategory returns the single identity category (row = 1) for the
// client. If none exists, ErrHistoryUnavailable is returned.
func (c Client) IdentityCategory(db *gorm.DB) (Category, error) {
	var category Category

	err := db.Where(&Category{ClientID: c.ID, Row: CategoryRowIdentity}, "ClientID", "Row").First(&category).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return Category{}, ErrHistoryUnavailable
		}
		return Category{}, err
	}

	return category, nil
}

// ToggleVisibility flips the visibility flag of the client and cascades the
// new flag to all of the client's categories.
//
// The identity and project categories are read with two concurrent queries.
// Client and category updates are then committed in a single database
// transaction, so either all rows carry the new flag or none do. The
// category update is skipped entirely when the client has no categories.
func (c *Client) ToggleVisibility(ctx context.Context, db *gorm.DB) error {
	visible := !c.Visible

	var identity, projects []Category

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.Where(&Category{ClientID: c.ID, Row: CategoryRowIdentity}, "ClientID", "Row").Find(&identity).Error
	})
	g.Go(func() error {
		return db.Where(&Category{ClientID: c.ID, Row: CategoryRowProject}, "ClientID", "Row").Find(&projects).Error
	})

	if err := g.Wait(); err != nil {
		return err
	}

	ids := make([]string, 0, len(identity)+len(projects))
	for _, category := range append(identity, projects...) {
		ids = append(ids, category.ID.String())
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(c).Update("visible", visible).Error
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		return tx.Model(&Category{}).Where("id IN ?", ids).Update("visible", visible).Error
	})
	if err != nil {
		return err
	}

	c.Visible = visible
	return nil
}

// DeleteWithHistory removes the client, its categories, and all
// transactions belonging to those categories.
func (c Client) DeleteWithHistory(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categories, err := c.Categories(tx)
		if err != nil {
			return err
		}

		for _, category := range categories {
			err = tx.Where(&Transaction{CategoryID: &category.ID}).Delete(&Transaction{}).Error
			if err != nil {
				return err
			}
		}

		err = tx.Where(&Category{ClientID: c.ID}).Delete(&Category{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&c).Error
	})
}

// DeleteIconOnly removes the client and its categories, but keeps the
// transaction history. Transactions referencing a deleted category keep
// existing with a cleared category reference.
func (c Client) DeleteIconOnly(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categories, err := c.Categories(tx)
		if err != nil {
			return err
		}

		for _, category := range categories {
			// A typed update so that the transaction hooks see a
			// Transaction destination, not a map
			err = tx.Model(&Transaction{}).
				Where(&Transaction{CategoryID: &category.ID}).
				Select("CategoryID").
				Updates(Transaction{}).Error
			if err != nil {
				return err
			}
		}

		err = tx.Where(&Category{ClientID: c.ID}).Delete(&Category{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&c).Error
	})
}

// Returns all clients on this instance for export
func (Client) Export() (json.RawMessage, error) {
	var clients []Client
	err := DB.Unscoped().Where(&Client{}).Find(&clients).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&clients)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
