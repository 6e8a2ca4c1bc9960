package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPasswordHashing(t *testing.T) {
	a := &Admin{Username: "admin"}
	require.NoError(t, a.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", a.PasswordHash)
	assert.True(t, a.CheckPassword("s3cret"))
	assert.False(t, a.CheckPassword("wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	account := &Admin{ID: primitive.NewObjectID(), Role: "admin"}

	token, err := issuer.Issue(account, time.Now())
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.Hex(), claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenExpiry(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	account := &Admin{ID: primitive.NewObjectID(), Role: "admin"}

	// Issued more than a week ago.
	token, err := issuer.Issue(account, time.Now().Add(-TokenTTL-time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	account := &Admin{ID: primitive.NewObjectID(), Role: "admin"}
	token, err := NewTokenIssuer("secret-a").Issue(account, time.Now())
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	account := &Admin{ID: primitive.NewObjectID(), Role: "admin"}
	token, err := issuer.Issue(account, time.Now())
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, account.ID.Hex(), claims.Subject)
		w.WriteHeader(http.StatusOK)
	})
	protected := issuer.RequireAuth(next)

	t.Run("valid token passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := issuer.RequireAuth(RequireRole(RoleAdmin)(next))

	serve := func(role string) *httptest.ResponseRecorder {
		account := &Admin{ID: primitive.NewObjectID(), Role: role}
		token, err := issuer.Issue(account, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/doctors/abc", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		return rec
	}

	t.Run("admin role passes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(RoleAdmin).Code)
	})

	t.Run("staff role forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(RoleStaff).Code)
	})

	t.Run("no claims forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/doctors/abc", nil)
		rec := httptest.NewRecorder()
		RequireRole(RoleAdmin)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
