package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	OwnerNIC         string    // NIC владельца EV
	StationID        string    // ID зарядной станции
	SlotNumber       int       // Номер слота (1..TotalSlots)
	ReservationStart time.Time // Начало окна бронирования (UTC)
	DurationMinutes  int       // Длительность в минутах (0 = значение по умолчанию)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               string    // ID созданного бронирования
	OwnerNIC         string    // NIC владельца
	StationID        string    // ID станции
	SlotNumber       int       // Номер слота
	ReservationStart time.Time // Начало окна
	ReservationEnd   time.Time // Конец окна (производное)
	DurationMinutes  int       // Длительность в минутах
	Status           string    // Статус бронирования

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
