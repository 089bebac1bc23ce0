package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

func collectFilters(c *gin.Context) services.Filters {
	return services.Filters{
		Q:        strings.TrimSpace(c.Query("q")),
		Veggie:   boolQuery(c, "veggie"),
		Expiring: boolQuery(c, "expiring"),
	}
}

func boolQuery(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true"
}

func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	offset, _ = strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(404, gin.H{"error": "not_found"})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors to HTTP statuses. The error
// message is the wire error code.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrContainerNotAvailable),
		errors.Is(err, services.ErrNoItemsAvailable):
		c.JSON(404, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrMissingName),
		errors.Is(err, services.ErrMissingComponents),
		errors.Is(err, services.ErrMissingBoxes),
		errors.Is(err, services.ErrInvalidComponent),
		errors.Is(err, services.ErrDuplicateContainer),
		errors.Is(err, services.ErrPortionMissing),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidStorageType),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrDuplicateContainerCode),
		errors.Is(err, services.ErrCounterMissing),
		errors.Is(err, services.ErrNoItemsSelected):
		c.JSON(422, gin.H{"error": err.Error()})
	default:
		c.JSON(500, gin.H{"error": err.Error()})
	}
}
