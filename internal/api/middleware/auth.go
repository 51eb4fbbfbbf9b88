package middleware

import (
	"context"
	"net/http"

	"github.com/officely-app/Officely-BookingService/internal/api/handlers"
	"github.com/officely-app/Officely-BookingService/internal/domain"
)

const (
	// HeaderUserID заголовок с идентификатором пользователя,
	// проставляется API-шлюзом после проверки токена
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleAdmin значение роли администратора
	RoleAdmin = "admin"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

type actorKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладет domain.Actor
// в контекст запроса. Запросы без заголовка отклоняются с 401.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		actor := domain.Actor{
			UserID: userID,
			Admin:  r.Header.Get(HeaderUserRole) == RoleAdmin,
		}

		ctx := context.WithValue(r.Context(), actorKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает актора, положенного в контекст middleware Auth
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}
