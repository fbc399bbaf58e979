package mux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_MissingToken(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	var resp errorResponse
	assertGet(t, ts, "/user", &resp, http.StatusUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assertPost(t, ts, "/user/deposit", depositPayload{Amount: 100}, &resp, http.StatusUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assertGet(t, ts, "/room/room-1/ws", &resp, http.StatusUnauthorized)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPostUser_Validation(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	var resp errorResponse

	assertPost(t, ts, "/user", userPayload{Username: "x", Email: "a@example.com", Password: "password"}, &resp, http.StatusBadRequest)
	assert.Equal(t, "username must only contain letters, numbers, and underscores, and be between 3 and 24 characters", resp.Message)

	assertPost(t, ts, "/user", userPayload{Username: "alice", Email: "not-an-email", Password: "password"}, &resp, http.StatusBadRequest)
	assert.Equal(t, "missing or invalid email address", resp.Message)

	assertPost(t, ts, "/user", userPayload{Username: "alice", Email: "a@example.com", Password: "short"}, &resp, http.StatusBadRequest)
	assert.Equal(t, "password must be 6 or more characters", resp.Message)
}

func TestDecodeRequest_ContentType(t *testing.T) {
	ts := httptest.NewServer(NewMux("test"))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/user", nil)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")

	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}
