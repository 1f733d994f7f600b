package get_available_slots

import (
	"strings"
	"time"

	"github.com/voltspot/EVC-BookingService/internal/domain"
)

// buildWindow вычисляет окно запроса.
// Если время не указано, окном считаются весь день [date, date+24h).
// Иначе окно [date+time, date+time+duration), длительность по умолчанию 2 часа.
func buildWindow(req *Request) (time.Time, time.Time) {
	dayStart := req.Date.UTC().Truncate(24 * time.Hour)

	if req.Time == nil {
		return dayStart, dayStart.Add(24 * time.Hour)
	}

	minutes, err := req.Time.Minutes()
	if err != nil {
		// Формат проверен валидацией, сюда попасть не должны
		return dayStart, dayStart.Add(24 * time.Hour)
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	start := dayStart.Add(time.Duration(minutes) * time.Minute)
	return start, start.Add(time.Duration(duration) * time.Minute)
}

// maskName маскирует полное имя владельца для публичной выдачи:
// "Jane Doe" -> "Jane D.", одиночное имя проходит как есть,
// пустое имя -> "Unknown".
func maskName(fullName string) string {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return "Unknown"
	}

	parts := strings.Fields(trimmed)
	if len(parts) == 1 {
		return parts[0]
	}

	last := parts[len(parts)-1]
	return parts[0] + " " + string([]rune(last)[:1]) + "."
}
