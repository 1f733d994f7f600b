package middleware

import (
	"context"
	"net/http"

	"github.com/voltspot/EVC-BookingService/internal/api/handlers"
)

// HeaderOwnerNIC заголовок с NIC владельца EV, проставляется API gateway
const HeaderOwnerNIC = "X-User-NIC"

type ctxKey int

const ownerNICKey ctxKey = iota

// Logger интерфейс логирования для middleware
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет наличие заголовка X-User-NIC и кладёт NIC в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nic := r.Header.Get(HeaderOwnerNIC)
			if nic == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderOwnerNIC)
				handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
				return
			}

			ctx := context.WithValue(r.Context(), ownerNICKey, nic)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwnerNIC извлекает NIC владельца из контекста запроса
func GetOwnerNIC(ctx context.Context) (string, bool) {
	nic, ok := ctx.Value(ownerNICKey).(string)
	return nic, ok
}
