package domain

import "errors"

var (
	// ErrInvalidTransition возвращается при недопустимой смене статуса бронирования
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")

	// ErrTimingViolation возвращается, когда операция нарушает временные правила:
	// дата вне окна [now, now+7d] или изменение внутри 12-часового cutoff'а
	ErrTimingViolation = errors.New("domain: booking timing violation")

	// ErrOutOfRange возвращается при значении вне допустимого диапазона
	// (номер слота, длительность)
	ErrOutOfRange = errors.New("domain: value out of range")
)
