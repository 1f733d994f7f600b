package validate_booking

import "time"

// Request модель запроса на предварительную проверку бронирования.
// ExcludeBookingID заполняется при проверке переноса: само переносимое
// бронирование не должно конфликтовать с собой.
type Request struct {
	OwnerNIC         string    // NIC владельца EV
	StationID        string    // ID зарядной станции
	SlotNumber       int       // Номер слота
	ReservationStart time.Time // Начало окна (UTC)
	DurationMinutes  int       // Длительность в минутах (0 = значение по умолчанию)
	ExcludeBookingID string    // ID бронирования, исключаемого из проверки (опционально)
}

// Response результат проверки.
// Проверка не создаёт бронирование и ничего не блокирует: результат
// носит рекомендательный характер и может устареть к моменту создания.
type Response struct {
	CanBook       bool     `json:"canBook"`       // Все проверки пройдены
	Messages      []string `json:"messages"`      // Причины отказа (пусто, если canBook)
	EstimatedCost *float64 `json:"estimatedCost"` // Оценка стоимости, если canBook

	// Подсказки при занятом слоте
	SuggestedSlots []int           `json:"suggestedSlots,omitempty"` // Свободные слоты на то же окно
	SuggestedTimes []SuggestedTime `json:"suggestedTimes,omitempty"` // Соседние окна того же слота
}

// SuggestedTime альтернативное время для того же слота
type SuggestedTime struct {
	ReservationStart time.Time `json:"reservationStart"`
	Available        bool      `json:"available"`
}
