package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is a validated offset/limit pair taken from the query string.
type Page struct {
	Offset int
	Limit  int
}

// ParsePagination parses the offset and limit query parameters.
// Defaults are offset 0 and limit DefaultLimit; limit cannot exceed MaxLimit.
func ParsePagination(c *gin.Context) (Page, error) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return Page{}, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 || limit > MaxLimit {
		return Page{}, fmt.Errorf("invalid limit parameter: must be between 1 and %d", MaxLimit)
	}

	return Page{Offset: offset, Limit: limit}, nil
}
