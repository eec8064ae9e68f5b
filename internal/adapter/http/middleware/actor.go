package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/pocketbank/internal/domain"
)

// UserIDHeader carries the caller identity asserted by the upstream gateway.
const UserIDHeader = "X-User-ID"

// Actor copies the caller identity and request metadata into the context
// so that audit records can attribute changes.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if userID := r.Header.Get(UserIDHeader); userID != "" {
			ctx = domain.WithActor(ctx, userID)
		}

		ctx = domain.WithRequestMeta(ctx, domain.RequestMeta{
			IPAddress: clientIP(r),
			UserAgent: r.UserAgent(),
			RequestID: chimw.GetReqID(ctx),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
