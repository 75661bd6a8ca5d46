package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// htmlContentType matches what the legacy endpoints served; the map client
// renders these bodies verbatim into its result panes.
const htmlContentType = "text/html; charset=utf-8"

// queryFailedMessage is the generic store-failure body. The specific cause is
// logged, never shown to the user.
const queryFailedMessage = "Query could not be executed."

// fragment writes an HTML fragment response. Validation failures and
// successes alike are HTTP 200; only the body tells them apart.
func fragment(c *gin.Context, body string) {
	c.Data(http.StatusOK, htmlContentType, []byte(body))
}
