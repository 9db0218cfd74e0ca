package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hotwellkz/app59/internal/models"
	app_uuid "github.com/hotwellkz/app59/internal/uuid"
	"github.com/shopspring/decimal"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	ClientID uuid.UUID          `json:"clientId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the client the category belongs to
	Row      models.CategoryRow `json:"row" example:"1" default:"3"`                             // Row discriminant, 1 for the identity record, 3 for projects
	Title    string             `json:"title" example:"Ivanov Petr" default:""`                  // Display title, derived from the client name when empty
	Visible  bool               `json:"visible" example:"true" default:"false"`                  // Is the category icon shown in other views?
	Amount   decimal.Decimal    `json:"amount" example:"1480000"`                                // Display amount
	Icon     string             `json:"icon" example:"Home" default:""`                          // Icon name
	Color    string             `json:"color" example:"#3B82F6" default:""`                      // Icon color
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		ClientID: editable.ClientID,
		Row:      editable.Row,
		Title:    editable.Title,
		Visible:  editable.Visible,
		Amount:   editable.Amount,
		Icon:     editable.Icon,
		Color:    editable.Color,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Client       string `json:"client" example:"https://example.com/api/v1/clients/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`                     // The client this category belongs to
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions for this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			ClientID: model.ClientID,
			Row:      model.Row,
			Title:    model.Title,
			Visible:  model.Visible,
			Amount:   model.Amount,
			Icon:     model.Icon,
			Color:    model.Color,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Client:       fmt.Sprintf("%s/v1/clients/%s", url, model.ClientID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	ClientID app_uuid.UUID `form:"client"`                     // By ID of the client
	Row      int           `form:"row"`                        // By row discriminant
	Visible  bool          `form:"visible"`                    // Is the category visible?
	Title    string        `form:"title" filterField:"false"`  // By title
	Search   string        `form:"search" filterField:"false"` // By string in title
	Offset   uint          `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit    int           `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		ClientID: f.ClientID.UUID,
		Row:      models.CategoryRow(f.Row),
		Visible:  f.Visible,
	}
}
