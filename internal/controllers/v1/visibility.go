package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/httputil"
	"github.com/hotwellkz/app59/internal/models"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/visibility [options]
func OptionsClientVisibility(c *gin.Context) {
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

	httputil.OptionsPost(c)
}

// @Summary		Toggle visibility
// @Description	Flips the visibility flag of the client and cascades the new flag to all of the client's categories in a single transaction.
// @Tags			Clients
// @Produce		json
// @Success		200	{object}	ClientResponse
// @Failure		400	{object}	ClientResponse
// @Failure		404	{object}	ClientResponse
// @Failure		500	{object}	ClientResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/clients/{id}/visibility [post]
func ToggleClientVisibility(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	var client models.Client
	err = models.DB.First(&client, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	err = client.ToggleVisibility(c.Request.Context(), models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ClientResponse{
			Error: &s,
		})
		return
	}

	historyCache.Flush()
	broker.Notify()

	data := newClient(c, client)
	c.JSON(http.StatusOK, ClientResponse{Data: &data})
}
