package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotwellkz/app59/internal/httputil"
	"github.com/hotwellkz/app59/internal/models"
	"github.com/hotwellkz/app59/internal/subscription"
	"golang.org/x/exp/slices"
)

// broker delivers client list snapshots to watch subscribers. All
// mutating client endpoints call Notify on it.
var broker = subscription.NewBroker()

type WatchQuery struct {
	Year   int                 `form:"year"`   // Filter by year, 0 matches all years
	Status models.ClientStatus `form:"status"` // Filter by status, empty matches all statuses
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Clients
// @Success		204
// @Router			/v1/clients/watch [options]
func OptionsClientWatch(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Watch clients
// @Description	Opens a server-sent event stream of client list snapshots for the given filter. Every event carries the complete matching list, replacing previous state. A new event is sent after every mutation of the client collection.
// @Tags			Clients
// @Produce		text/event-stream
// @Success		200
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			year	query	int		false	"Filter by year"
// @Param			status	query	string	false	"Filter by status"
// @Router			/v1/clients/watch [get]
func WatchClients(c *gin.Context) {
	var filter WatchQuery
	_ = c.Bind(&filter)

	if filter.Status != "" && !slices.Contains(models.ClientStatuses(), filter.Status) {
		c.JSON(http.StatusBadRequest, httpError{
			Error: models.ErrClientStatusInvalid.Error(),
		})
		return
	}

	snapshots, unsubscribe, err := broker.Subscribe(subscription.Filter{
		Year:   filter.Year,
		Status: filter.Status,
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(_ io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
