package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("update_booking: station not found")

	// ErrStationClosed возвращается, когда станция не работает в новое время
	ErrStationClosed = errors.New("update_booking: station is closed at this time")

	// ErrInvalidTransition возвращается при переносе бронирования в терминальном статусе
	ErrInvalidTransition = errors.New("update_booking: invalid booking status transition")

	// ErrTimingViolation возвращается при нарушении временных правил
	// (12-часовой cutoff, окно бронирования)
	ErrTimingViolation = errors.New("update_booking: booking timing violation")

	// ErrOutOfRange возвращается при значении вне допустимого диапазона
	ErrOutOfRange = errors.New("update_booking: value out of range")

	// ErrSlotNotAvailable возвращается, когда слот занят на новое окно
	ErrSlotNotAvailable = errors.New("update_booking: slot is not available")

	// ErrSlotConflict возвращается, когда конкурирующая транзакция заняла слот
	ErrSlotConflict = errors.New("update_booking: slot was taken by a concurrent booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
