// Package respond centralizes success and error response rendering so every
// handler emits the same shapes.
package respond

import "github.com/gin-gonic/gin"

// JSON renders payload as the response body with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
