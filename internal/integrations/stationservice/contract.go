package stationservice

// Logger интерфейс логирования для клиента StationService
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
