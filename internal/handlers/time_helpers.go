package handlers

import (
	"time"

	"github.com/PilotarApp/lesson-scheduler/internal/timezone"
)

// parseDate interpreta "2006-01-02" no fuso da operação; os filtros de
// agenda trabalham em dias locais sobre instantes UTC persistidos.
func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
}

func timezoneLocation() *time.Location {
	return timezone.Location()
}
