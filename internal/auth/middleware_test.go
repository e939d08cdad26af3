package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/codecourse-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	known map[string]bool
}

func (s stubChecker) Exists(_ context.Context, userID string) (bool, error) {
	return s.known[userID], nil
}

func protected(checker auth.UserChecker) http.Handler {
	return auth.Middleware(checker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := auth.GetUserClaimsFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(claims.UserID))
	}))
}

func TestMiddleware(t *testing.T) {
	auth.Init(testSecret)
	token, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
	require.NoError(t, err)

	cases := []struct {
		name    string
		header  string
		checker auth.UserChecker
		status  int
	}{
		{"NoHeader", "", nil, http.StatusUnauthorized},
		{"WrongScheme", "Basic " + token, nil, http.StatusUnauthorized},
		{"MissingToken", "Bearer ", nil, http.StatusUnauthorized},
		{"Garbage", "Bearer not-a-jwt", nil, http.StatusUnauthorized},
		{"Valid", "Bearer " + token, nil, http.StatusOK},
		{"UnknownUser", "Bearer " + token, stubChecker{known: map[string]bool{}}, http.StatusUnauthorized},
		{"KnownUser", "Bearer " + token, stubChecker{known: map[string]bool{testUserID: true}}, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			protected(tc.checker).ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, testUserID, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), "message")
			}
		})
	}
}

func TestGetUserClaimsFromContextEmpty(t *testing.T) {
	_, err := auth.GetUserClaimsFromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoClaims)
}
