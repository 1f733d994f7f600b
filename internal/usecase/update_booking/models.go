package update_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID        string    // ID переносимого бронирования
	ReservationStart time.Time // Новое начало окна (UTC)
	DurationMinutes  int       // Новая длительность (0 = оставить прежнюю)
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID               string    // ID бронирования
	OwnerNIC         string    // NIC владельца
	StationID        string    // ID станции
	SlotNumber       int       // Номер слота
	ReservationStart time.Time // Новое начало окна
	ReservationEnd   time.Time // Новый конец окна (производное)
	DurationMinutes  int       // Длительность в минутах
	Status           string    // Статус (после переноса всегда pending)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
