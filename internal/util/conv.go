package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamUint reads a positive integer path parameter.
func ParamUint(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
