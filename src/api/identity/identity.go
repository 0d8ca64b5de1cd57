// Package identity talks to the hosted identity provider that owns user
// accounts, email verification and the OAuth login flow.
package identity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	apiKey   string
	clientID string
	baseURL  string
	client   *http.Client
}

// User is the provider's view of an account. FirstName and LastName are
// empty when the user never completed their profile.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	EmailVerified     bool   `json:"email_verified"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type authenticateRequest struct {
	ClientID  string `json:"client_id"`
	GrantType string `json:"grant_type"`
	Code      string `json:"code"`
}

type authenticateResponse struct {
	User  User   `json:"user"`
	Error string `json:"error,omitempty"`
}

func NewClient(apiKey, clientID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.workos.com/user_management"
	}
	return &Client{
		apiKey:   apiKey,
		clientID: clientID,
		baseURL:  baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AuthorizationURL builds the hosted-login redirect for the frontend.
func (c *Client) AuthorizationURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("provider", "authkit")
	if state != "" {
		q.Set("state", state)
	}
	return fmt.Sprintf("%s/authorize?%s", c.baseURL, q.Encode())
}

// AuthenticateWithCode exchanges an OAuth authorization code for the user it
// belongs to.
func (c *Client) AuthenticateWithCode(code string) (*User, error) {
	body, err := json.Marshal(authenticateRequest{
		ClientID:  c.clientID,
		GrantType: "authorization_code",
		Code:      code,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", c.baseURL+"/authenticate", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider: %s", result.Error)
	}
	return &result.User, nil
}

// GetUser fetches one user's identity facts.
func (c *Client) GetUser(userID string) (*User, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID)), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("identity provider: user lookup returned %d", resp.StatusCode)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
