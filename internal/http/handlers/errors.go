package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-api/internal/apperr"
)

// bindBody decodes the JSON body into dst. Fields are not validated here;
// missing or mistyped values are left for the store to reject. A body that
// is not JSON at all is reported as a generic bad request.
func bindBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.BadRequest()
	}
	return nil
}
