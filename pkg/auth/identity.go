package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IdentityClient implements sign-in and token lookup against an
// identity-toolkit style REST endpoint.
type IdentityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewIdentityClient(baseURL, apiKey string) *IdentityClient {
	return &IdentityClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SignIn exchanges email/password credentials for a session token.
func (c *IdentityClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var parsed struct {
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
	}
	status, err := c.post(ctx, "accounts:signInWithPassword", body, &parsed)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("auth sign-in: unexpected status %d", status)
	}

	return &Session{
		UID:          parsed.LocalID,
		Email:        parsed.Email,
		IDToken:      parsed.IDToken,
		RefreshToken: parsed.RefreshToken,
		ExpiresIn:    parsed.ExpiresIn,
	}, nil
}

// VerifyToken resolves a token to the account it belongs to. The
// admin flag rides in the account's custom attributes as a JSON
// object, e.g. {"admin":true}.
func (c *IdentityClient) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	body := map[string]any{"idToken": token}

	var parsed struct {
		Users []struct {
			LocalID          string `json:"localId"`
			Email            string `json:"email"`
			CustomAttributes string `json:"customAttributes"`
		} `json:"users"`
	}
	status, err := c.post(ctx, "accounts:lookup", body, &parsed)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidToken
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("auth lookup: unexpected status %d", status)
	}
	if len(parsed.Users) == 0 {
		return nil, ErrInvalidToken
	}

	user := parsed.Users[0]
	claims := &Claims{UID: user.LocalID, Email: user.Email}
	if user.CustomAttributes != "" {
		var attrs struct {
			Admin bool `json:"admin"`
		}
		if err := json.Unmarshal([]byte(user.CustomAttributes), &attrs); err == nil {
			claims.Admin = attrs.Admin
		}
	}
	return claims, nil
}

func (c *IdentityClient) post(ctx context.Context, action string, body any, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("auth %s: %w", action, err)
	}

	url := fmt.Sprintf("%s/v1/%s?key=%s", c.baseURL, action, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("auth %s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("auth %s: %w", action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("auth %s decode: %w", action, err)
		}
	}
	return resp.StatusCode, nil
}
