package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/models"
)

// ClientEditable represents all user configurable parameters
type ClientEditable struct {
	FirstName           string              `json:"firstName" example:"Petr" default:""`                   // First name of the client
	LastName            string              `json:"lastName" example:"Ivanov" default:""`                  // Last name of the client
	ClientNumber        string              `json:"clientNumber" example:"2024-05" default:""`             // Unique client number
	ConstructionAddress string              `json:"constructionAddress" example:"Abay Ave 150" default:""` // Address of the construction site
	ObjectName          string              `json:"objectName" example:"Guest house" default:""`           // Optional name of the object under construction
	Status              models.ClientStatus `json:"status" example:"building" default:"building"`          // Status, one of "building", "deposit", "built"
	Visible             bool                `json:"visible" example:"true" default:"false"`                // Is the client's icon shown in other views?
	Year                int                 `json:"year" example:"2024" default:"0"`                       // Year the client belongs to
}

func (editable ClientEditable) model() models.Client {
	return models.Client{
		FirstName:           editable.FirstName,
		LastName:            editable.LastName,
		ClientNumber:        editable.ClientNumber,
		ConstructionAddress: editable.ConstructionAddress,
		ObjectName:          editable.ObjectName,
		Status:              editable.Status,
		Visible:             editable.Visible,
		Year:                editable.Year,
	}
}

type ClientLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/clients/d1b9dcac-9c7f-42ff-9c4f-b17193e0a216"`                  // The client itself
	Categories string `json:"categories" example:"https://example.com/api/v1/categories?client=d1b9dcac-9c7f-42ff-9c4f-b17193e0a216"`  // Categories for this client
	History    string `json:"history" example:"https://example.com/api/v1/clients/d1b9dcac-9c7f-42ff-9c4f-b17193e0a216/history"`       // Transaction history for this client
	Visibility string `json:"visibility" example:"https://example.com/api/v1/clients/d1b9dcac-9c7f-42ff-9c4f-b17193e0a216/visibility"` // Visibility toggle for this client
}

type Client struct {
	models.DefaultModel
	ClientEditable
	Links ClientLinks `json:"links"`
}

func newClient(c *gin.Context, model models.Client) Client {
	url := c.GetString(string(models.DBContextURL))

	return Client{
		DefaultModel: model.DefaultModel,
		ClientEditable: ClientEditable{
			FirstName:           model.FirstName,
			LastName:            model.LastName,
			ClientNumber:        model.ClientNumber,
			ConstructionAddress: model.ConstructionAddress,
			ObjectName:          model.ObjectName,
			Status:              model.Status,
			Visible:             model.Visible,
			Year:                model.Year,
		},
		Links: ClientLinks{
			Self:       fmt.Sprintf("%s/v1/clients/%s", url, model.ID),
			Categories: fmt.Sprintf("%s/v1/categories?client=%s", url, model.ID),
			History:    fmt.Sprintf("%s/v1/clients/%s/history", url, model.ID),
			Visibility: fmt.Sprintf("%s/v1/clients/%s/visibility", url, model.ID),
		},
	}
}

type ClientListResponse struct {
	Data       []Client    `json:"data"`                                                          // List of Clients
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ClientCreateResponse struct {
	Data  []ClientResponse `json:"data"`                                                          // List of the created Clients or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *ClientCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, ClientResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ClientResponse struct {
	Data  *Client `json:"data"`                                                          // Data for the Client
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ClientQueryFilter struct {
	Year    int                 `form:"year"`                       // By year
	Status  models.ClientStatus `form:"status"`                     // By status
	Visible bool                `form:"visible"`                    // Is the client visible?
	Number  string              `form:"number" filterField:"false"` // By client number
	Search  string              `form:"search" filterField:"false"` // By string in name, number, address or object name
	Offset  uint                `form:"offset" filterField:"false"` // The offset of the first Client returned. Defaults to 0.
	Limit   int                 `form:"limit" filterField:"false"`  // Maximum number of Clients to return. Defaults to 50.
}

func (f ClientQueryFilter) model() models.Client {
	return models.Client{
		Year:    f.Year,
		Status:  f.Status,
		Visible: f.Visible,
	}
}
