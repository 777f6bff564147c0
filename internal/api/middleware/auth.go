// Package middleware содержит HTTP middleware сервиса.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StorageService/internal/api/handlers"
)

type userIDKey struct{}

const headerUserID = "X-User-ID"

// Auth требует заголовок X-User-ID с числовым ID пользователя и кладет
// его в context запроса. Запросы без заголовка получают 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя, положенный Auth middleware
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
