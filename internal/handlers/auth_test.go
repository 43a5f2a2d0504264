package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	w := s.doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "hunter2",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["token"])

	// Same email again
	w = s.doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "alice2", "email": "alice@example.com", "password": "hunter2",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", message(t, w))

	// Same username again
	w = s.doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "alice", "email": "other@example.com", "password": "hunter2",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", message(t, w))

	// First violated constraint is named
	w = s.doJSON(t, "POST", "/api/auth/register", map[string]string{
		"username": "bob", "email": "bob@example.com", "password": "abc",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "password must be at least 6 characters", message(t, w))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice")

	w := s.doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "hunter2",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = s.doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", message(t, w))

	w = s.doJSON(t, "POST", "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "hunter2",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", message(t, w))
}

func TestAuthGate(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "alice")

	w := s.do(t, "GET", "/api/auth/me", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, no token", message(t, w))

	w = s.do(t, "GET", "/api/auth/me", nil, "", "garbage.token.here")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Not authorized, token failed", message(t, w))

	w = s.do(t, "GET", "/api/auth/me", nil, "", token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "alice", body["username"])
	_, leaked := body["password"]
	assert.False(t, leaked, "password hash must never be serialized")
}
