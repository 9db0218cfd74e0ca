package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/httputil"
	"github.com/hotwellkz/app59/internal/models"
)

type Response struct {
	Error *string `json:"error" example:"database is not reachable"` // The error, if one occurred
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	Response
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, Response{Error: &s})
		return
	}

	err = sqlDB.Ping()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, Response{Error: &s})
		return
	}

	c.Status(http.StatusNoContent)
}
