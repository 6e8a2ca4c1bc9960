package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/DucLamDev/quanlyphongkham-BE/internal/api/respond"
)

type contextKey struct{}

// ClaimsFromContext returns the admin claims placed by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}

// RequireAuth rejects requests without a valid Bearer token.
func (t *TokenIssuer) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(w, http.StatusUnauthorized, "Vui lòng đăng nhập")
			return
		}
		claims, err := t.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, "Phiên đăng nhập không hợp lệ hoặc đã hết hạn")
			return
		}
		ctx := context.WithValue(r.Context(), contextKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated requests whose account role is not
// one of the listed roles. Mount it after RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !roleAllowed(claims.Role, roles) {
				respond.Error(w, http.StatusForbidden, "Bạn không có quyền thực hiện hành động này")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleAllowed(role string, roles []string) bool {
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
