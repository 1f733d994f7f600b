package get_available_slots

import (
	"time"

	"github.com/voltspot/EVC-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StationID       string            // ID зарядной станции
	Date            time.Time         // Интересующий день
	Time            *types.TimeString // Время начала окна (опционально, HH:MM)
	DurationMinutes int               // Длительность окна в минутах (используется вместе с Time)
}

// Response модель ответа с доступными слотами
type Response struct {
	StationID      string           // ID станции
	StationName    string           // Название станции
	Date           string           // День в формате YYYY-MM-DD
	TotalSlots     int              // Всего слотов на станции
	AvailableSlots []int            // Свободные слоты (по возрастанию)
	AvailableCount int              // Количество свободных слотов
	BookedSlots    []BookedSlotInfo // Занятые слоты с деталями
	IsFullyBooked  bool             // Свободных слотов нет
}

// BookedSlotInfo информация о занятом слоте.
// Имя владельца маскируется: "Jane Doe" -> "Jane D.", неизвестный -> "Unknown".
type BookedSlotInfo struct {
	BookingID        string    // ID блокирующего бронирования
	SlotNumber       int       // Номер слота
	ReservationStart time.Time // Начало окна бронирования
	ReservationEnd   time.Time // Конец окна бронирования
	Status           string    // Статус бронирования
	OwnerName        string    // Маскированное имя владельца
}
