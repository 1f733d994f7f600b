package create_booking

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("create_booking: station not found")

	// ErrStationNotOperational возвращается, когда станция не принимает бронирования
	ErrStationNotOperational = errors.New("create_booking: station is not operational")

	// ErrStationClosed возвращается, когда станция не работает в запрошенное время
	ErrStationClosed = errors.New("create_booking: station is closed at this time")

	// ErrSlotOutOfRange возвращается, когда номер слота вне диапазона станции
	ErrSlotOutOfRange = errors.New("create_booking: slot number out of range")

	// ErrSlotNotAvailable возвращается, когда слот уже занят на запрошенное окно
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotConflict возвращается, когда конкурирующая транзакция заняла слот
	// (исчерпаны retry сериализуемой транзакции)
	ErrSlotConflict = errors.New("create_booking: slot was taken by a concurrent booking")

	// ErrTimingViolation возвращается при нарушении временных правил бронирования
	ErrTimingViolation = errors.New("create_booking: booking timing violation")

	// ErrOutOfRange возвращается при значении вне допустимого диапазона
	ErrOutOfRange = errors.New("create_booking: value out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
