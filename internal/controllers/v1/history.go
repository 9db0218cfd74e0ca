package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/httputil"
	"github.com/hotwellkz/app59/internal/models"
	gocache "github.com/patrickmn/go-cache"
)

// historyCache keeps resolved identity categories per client so that
// repeated history lookups do not hit the database. All mutating
// endpoints flush it.
var historyCache = gocache.New(5*time.Minute, 10*time.Minute)

// Display defaults for identity categories created before icons were
// configurable.
const (
	defaultHistoryIcon  = "Home"
	defaultHistoryColor = "#3B82F6"
)

// HistoryResponse is the display-ready transaction history for a client.
type HistoryResponse struct {
	Data  *History `json:"data"`                                                                 // Data for the history view
	Error *string  `json:"error" example:"transaction history is not available for this client"` // The error, if any occurred
}

type History struct {
	Category     Category      `json:"category"`     // Display-ready identity category summary
	Transactions []Transaction `json:"transactions"` // Transactions of the identity category, newest first
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/history [options]
func OptionsClientHistory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Client{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get history
// @Description	Resolves the client's identity category and returns its transaction history. Returns 404 when the client has no identity category.
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	HistoryResponse
// @Failure		400	{object}	HistoryResponse
// @Failure		404	{object}	HistoryResponse
// @Failure		500	{object}	HistoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/history [get]
func GetClientHistory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoryResponse{
			Error: &s,
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoryResponse{
			Error: &s,
		})
		return
	}

	category, err := identityCategory(client)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoryResponse{
			Error: &s,
		})
		return
	}

	transactions, err := category.Transactions(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoryResponse{
			Error: &s,
		})
		return
	}

	history := History{
		Category:     newHistoryCategory(c, category),
		Transactions: make([]Transaction, 0, len(transactions)),
	}

	for _, transaction := range transactions {
		history.Transactions = append(history.Transactions, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, HistoryResponse{Data: &history})
}

// identityCategory resolves the client's identity category, using the
// cache when possible.
func identityCategory(client models.Client) (models.Category, error) {
	if cached, ok := historyCache.Get(client.ID.String()); ok {
		return cached.(models.Category), nil
	}

	category, err := client.IdentityCategory(models.DB)
	if err != nil {
		return models.Category{}, err
	}

	historyCache.SetDefault(client.ID.String(), category)
	return category, nil
}

// newHistoryCategory builds the category summary with display defaults
// for fields that were never set.
func newHistoryCategory(c *gin.Context, model models.Category) Category {
	category := newCategory(c, model)

	if category.Icon == "" {
		category.Icon = defaultHistoryIcon
	}

	if category.Color == "" {
		category.Color = defaultHistoryColor
	}

	return category
}
