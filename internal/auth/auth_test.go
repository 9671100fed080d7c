package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestStore() *MemStore {
	s := NewMemStore()
	s.cost = bcrypt.MinCost
	return s
}

func TestMemStore_CreateVerify(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	require.NoError(t, s.Create(ctx, " Buyer@Example.com ", "password123", RoleCustomer, "u_1"))
	require.ErrorIs(t, s.Create(ctx, "buyer@example.com", "other-pass", RoleCustomer, "u_2"), ErrEmailExists)

	u, err := s.Verify(ctx, "BUYER@example.com", "password123")
	require.NoError(t, err)
	require.Equal(t, "u_1", u.ID)
	require.Equal(t, RoleCustomer, u.Role)

	_, err = s.Verify(ctx, "buyer@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Verify(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenMaker_RoundTrip(t *testing.T) {
	tm := NewTokenMaker(testSecret, time.Minute)

	tok, err := tm.New(User{ID: "u_1", Email: "staff@shop.test", Role: RoleStaff})
	require.NoError(t, err)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, "u_1", claims.UserID)
	require.Equal(t, RoleStaff, claims.Role)
}

func TestTokenMaker_Rejects(t *testing.T) {
	tm := NewTokenMaker(testSecret, time.Minute)
	tok, err := tm.New(User{ID: "u_1", Role: RoleCustomer})
	require.NoError(t, err)

	other := NewTokenMaker(strings.Repeat("x", 32), time.Minute)
	_, err = other.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenMaker(testSecret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.New(User{ID: "u_1", Role: RoleCustomer})
	require.NoError(t, err)
	_, err = tm.Parse(old)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireRole(t *testing.T) {
	tm := NewTokenMaker(testSecret, time.Minute)
	h := RequireRole(tm, RoleStaff)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "u_staff", c.UserID)
		w.WriteHeader(http.StatusNoContent)
	}))

	staffTok, err := tm.New(User{ID: "u_staff", Role: RoleStaff})
	require.NoError(t, err)
	customerTok, err := tm.New(User{ID: "u_cust", Role: RoleCustomer})
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + customerTok, http.StatusForbidden},
		{"staff", "Bearer " + staffTok, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/computers", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestServer_RegisterLoginWhoAmI(t *testing.T) {
	s := &Server{Log: zap.NewNop(), Store: newTestStore(), JWT: NewTokenMaker(testSecret, time.Minute)}
	h := s.Routes()

	do := func(method, path, body, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/register", `{"email":"a@b.c","password":"short"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/register", `{"email":"a@b.c","password":"password123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(http.MethodPost, "/register", `{"email":"A@B.C","password":"password123"}`, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = do(http.MethodPost, "/login", `{"email":"a@b.c","password":"bad-password"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(http.MethodPost, "/login", `{"email":"a@b.c","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var lr loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	require.Equal(t, RoleCustomer, lr.Role)

	rec = do(http.MethodGet, "/whoami", "", lr.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":"a@b.c"`)
}

func TestServer_SeedStaff(t *testing.T) {
	s := &Server{Log: zap.NewNop(), Store: newTestStore(), JWT: NewTokenMaker(testSecret, time.Minute)}
	require.NoError(t, s.SeedStaff(context.Background(), "staff@shop.test", "staff-password"))

	u, err := s.Store.Verify(context.Background(), "staff@shop.test", "staff-password")
	require.NoError(t, err)
	require.Equal(t, RoleStaff, u.Role)
}
