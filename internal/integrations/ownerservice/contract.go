package ownerservice

// Logger интерфейс логирования для клиента OwnerService
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
