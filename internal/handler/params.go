package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/jdcastellanos/uni-registro-api/pkg/errors"
)

// int64Param parses a numeric path parameter.
func int64Param(c *gin.Context, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, appErrors.Clone(appErrors.ErrValidation, "parametro "+name+" invalido")
	}
	return value, nil
}

// boolQuery interprets a query flag; anything but "true" is false.
func boolQuery(c *gin.Context, name string) bool {
	return c.Query(name) == "true"
}
