package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/galleauto-billing/internal/presentation/http/dto/response"
	"github.com/sangkips/galleauto-billing/pkg/apperror"
)

const dateLayout = "2006-01-02"

// paramID parses the :id path parameter and answers 400 when it is not a
// UUID. ok is false when a response has already been written.
func paramID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads a YYYY-MM-DD calendar day in the shop's local time zone.
func parseDate(field, value string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, apperror.NewFieldError(field, "Date must be in YYYY-MM-DD format")
	}
	return d, nil
}

// parseDateOrToday is parseDate with an empty value meaning the current day.
func parseDateOrToday(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return parseDate(field, value)
}
