package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/juanbracho/girasoulresale/internal/logging"
	"github.com/juanbracho/girasoulresale/internal/service"
	"github.com/juanbracho/girasoulresale/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// fail maps service errors to the response envelope. Unknown errors become a
// 500 and are logged with request context.
func fail(c *gin.Context, module, funcName string, err error) {
	switch {
	case service.IsValidation(err):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
	case errors.Is(err, service.ErrNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateSKU),
		errors.Is(err, service.ErrAlreadySold),
		errors.Is(err, service.ErrAlreadyDisposed),
		errors.Is(err, service.ErrDuplicateName):
		util.Error(c, http.StatusConflict, util.CodeConflict, err.Error())
	case errors.Is(err, service.ErrItemLocked):
		util.Error(c, http.StatusLocked, util.CodeLocked, err.Error())
	default:
		logging.LogError(module, funcName, err, logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "internal error")
	}
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) int {
	s := c.Query(name)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
