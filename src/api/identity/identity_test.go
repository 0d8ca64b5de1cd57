package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationURL(t *testing.T) {
	c := NewClient("sk_test", "client_123", "https://id.example.com")

	got := c.AuthorizationURL("http://localhost:3000/callback", "xyz")
	assert.Contains(t, got, "https://id.example.com/authorize?")
	assert.Contains(t, got, "client_id=client_123")
	assert.Contains(t, got, "redirect_uri=http%3A%2F%2Flocalhost%3A3000%2Fcallback")
	assert.Contains(t, got, "state=xyz")
}

func TestAuthenticateWithCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/authenticate", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		var req authenticateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "authorization_code", req.GrantType)
		assert.Equal(t, "code_abc", req.Code)

		json.NewEncoder(w).Encode(authenticateResponse{User: User{
			ID: "user_1", Email: "a@example.com", EmailVerified: true,
		}})
	}))
	defer srv.Close()

	c := NewClient("sk_test", "client_123", srv.URL)
	u, err := c.AuthenticateWithCode("code_abc")
	require.NoError(t, err)
	assert.Equal(t, "user_1", u.ID)
	assert.True(t, u.EmailVerified)
}

func TestAuthenticateWithCodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(authenticateResponse{Error: "invalid_grant"})
	}))
	defer srv.Close()

	c := NewClient("sk_test", "client_123", srv.URL)
	_, err := c.AuthenticateWithCode("expired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/user_42", r.URL.Path)
		json.NewEncoder(w).Encode(User{ID: "user_42", FirstName: "Ada", LastName: "Lovelace"})
	}))
	defer srv.Close()

	c := NewClient("sk_test", "client_123", srv.URL)
	u, err := c.GetUser("user_42")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
}

func TestGetUserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("sk_test", "client_123", srv.URL)
	_, err := c.GetUser("ghost")
	assert.Error(t, err)
}
