package pawsitserver

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseIDParam extracts a positive int64 path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// parseOptionalID extracts a positive int64 query parameter when present.
func parseOptionalID(c *gin.Context, name string) (int64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, true, nil
}
