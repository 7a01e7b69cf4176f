// Package directory implements the workflow's DirectoryService port against a
// Microsoft-Graph-style REST API. Sessions authenticate with the OAuth2
// client-credentials grant, using a signed JWT client assertion instead of a
// shared secret.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/onboardly/dirprov/internal/workflow"
)

const (
	clientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
	assertionLifetime   = 5 * time.Minute
	defaultTimeout      = 30 * time.Second
)

var ErrAuthentication = errors.New("directory authentication failed")

type Config struct {
	// AuthBase is the token authority, e.g. https://login.microsoftonline.com.
	AuthBase string `mapstructure:"auth_base"`
	// APIBase is the resource API root, e.g. https://graph.microsoft.com.
	APIBase  string `mapstructure:"api_base"`
	ClientID string `mapstructure:"client_id"`
}

type Client struct {
	authBase   string
	apiBase    string
	clientID   string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		authBase:   strings.TrimRight(cfg.AuthBase, "/"),
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		clientID:   cfg.ClientID,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Connect exchanges a client-assertion JWT for a bearer token and returns the
// authenticated session. credentialRef is the path to the client's PEM
// encoded RSA private key.
func (c *Client) Connect(ctx context.Context, tenantID, credentialRef string) (workflow.Session, error) {
	assertion, err := c.buildAssertion(tenantID, credentialRef)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	form := url.Values{
		"grant_type":            {"client_credentials"},
		"client_id":             {c.clientID},
		"scope":                 {c.apiBase + "/.default"},
		"client_assertion_type": {clientAssertionType},
		"client_assertion":      {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL(tenantID),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, decodeAPIError(resp))
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", ErrAuthentication, err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response without access_token", ErrAuthentication)
	}

	return &Session{client: c, token: token.AccessToken}, nil
}

func (c *Client) tokenURL(tenantID string) string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", c.authBase, tenantID)
}

func (c *Client) buildAssertion(tenantID, credentialRef string) (string, error) {
	pemBytes, err := os.ReadFile(credentialRef)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return "", fmt.Errorf("parse credential: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.clientID,
		"sub": c.clientID,
		"aud": c.tokenURL(tenantID),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": now.Add(assertionLifetime).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return signed, nil
}
