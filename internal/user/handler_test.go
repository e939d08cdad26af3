package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlers(t *testing.T) {
	router := Routes(NewHandler(newTestService(t)))

	post := func(path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		return rr, out
	}

	rr, body := post("/register", `{"email":"linus@example.com","password":"kernel","fullName":"Linus"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "linus@example.com", body["email"])
	assert.NotContains(t, body, "password")

	rr, body = post("/register", `{"email":"linus@example.com","password":"kernel","fullName":"Linus"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email already in use", body["message"])

	rr, body = post("/login", `{"email":"linus@example.com","password":"kernel"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, body["access_token"])

	rr, body = post("/login", `{"email":"linus@example.com","password":"windows"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid email/password", body["message"])

	rr, body = post("/login", `{"password":"kernel"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email and password are required", body["message"])
}
