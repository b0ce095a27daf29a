package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
)

// TenantHeader заголовок с ID арендатора (салона)
const TenantHeader = "X-Tenant-ID"

const (
	msgMissingTenantID = "отсутствует заголовок X-Tenant-ID"
	msgInvalidTenantID = "некорректный ID арендатора"
)

type tenantKey struct{}

// Tenant извлекает ID арендатора из заголовка и кладёт его в контекст
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(TenantHeader)
		if raw == "" {
			handlers.RespondBadRequest(w, msgMissingTenantID)
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidTenantID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// WithTenantID кладёт ID арендатора в контекст
func WithTenantID(ctx context.Context, tenantID int64) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// GetTenantID возвращает ID арендатора из контекста
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantKey{}).(int64)
	return tenantID, ok
}
