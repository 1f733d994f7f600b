package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperatingHours_IsOpenAt(t *testing.T) {
	hours := OperatingHours{
		OpenTime:  "08:00",
		CloseTime: "20:00",
	}

	wednesday := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, hours.IsOpenAt(wednesday))

	// Границы включительно
	assert.True(t, hours.IsOpenAt(time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)))
	assert.True(t, hours.IsOpenAt(time.Date(2025, 10, 1, 20, 0, 0, 0, time.UTC)))

	// Вне часов работы
	assert.False(t, hours.IsOpenAt(time.Date(2025, 10, 1, 7, 59, 0, 0, time.UTC)))
	assert.False(t, hours.IsOpenAt(time.Date(2025, 10, 1, 20, 1, 0, 0, time.UTC)))
}

func TestOperatingHours_ClosedDayWinsOver24Hours(t *testing.T) {
	hours := OperatingHours{
		Is24Hours:  true,
		ClosedDays: []time.Weekday{time.Sunday},
	}

	sunday := time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)

	assert.False(t, hours.IsOpenAt(sunday))
	assert.True(t, hours.IsOpenAt(monday))
}

func TestOperatingHours_UnsetMeansAlwaysOpen(t *testing.T) {
	var hours OperatingHours

	assert.True(t, hours.IsOpenAt(time.Date(2025, 10, 1, 3, 0, 0, 0, time.UTC)))
}

func TestChargingStation_IsOperational(t *testing.T) {
	assert.True(t, (&ChargingStation{Status: StationActive}).IsOperational())
	assert.False(t, (&ChargingStation{Status: StationInactive}).IsOperational())
	assert.False(t, (&ChargingStation{Status: StationMaintenance}).IsOperational())
}
