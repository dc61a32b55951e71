package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
)

const dateLayout = "2006-01-02"

// intQuery parses an optional integer query parameter. The second return
// value reports whether the parameter was present.
func intQuery(c *gin.Context, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, domain.NewValidationError(name, "must be an integer")
	}
	return value, true, nil
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c *gin.Context, name string) (bool, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, domain.NewValidationError(name, "must be a boolean")
	}
	return value, true, nil
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (time.Time, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false, domain.NewValidationError(name, "must be a date in YYYY-MM-DD format")
	}
	return value, true, nil
}

// minutesQuery parses an optional query parameter expressed in whole minutes.
func minutesQuery(c *gin.Context, name string) (time.Duration, bool, error) {
	minutes, ok, err := intQuery(c, name)
	if err != nil || !ok {
		return 0, ok, err
	}
	return time.Duration(minutes) * time.Minute, true, nil
}

// dateRangeQuery parses the required start_date and end_date parameters.
func dateRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	start, ok, err := dateQuery(c, "start_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, domain.NewValidationError("start_date", "is required")
	}
	end, ok, err := dateQuery(c, "end_date")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !ok {
		return time.Time{}, time.Time{}, domain.NewValidationError("end_date", "is required")
	}
	return start, end, nil
}
