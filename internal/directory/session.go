package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/onboardly/dirprov/internal/workflow"
)

var ErrSessionClosed = errors.New("directory session is closed")

// APIError is a decoded directory error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("directory API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("directory API error %s: %s", e.Code, e.Message)
}

// Session holds one bearer token. It is stateful and not safe for concurrent
// use, matching the workflow's sequential access contract.
type Session struct {
	client *Client
	token  string
	closed bool
}

type passwordProfile struct {
	Password                      string `json:"password"`
	ForceChangePasswordNextSignIn bool   `json:"forceChangePasswordNextSignIn"`
}

type createUserRequest struct {
	AccountEnabled    bool            `json:"accountEnabled"`
	DisplayName       string          `json:"displayName"`
	MailNickname      string          `json:"mailNickname"`
	UserPrincipalName string          `json:"userPrincipalName"`
	Department        string          `json:"department,omitempty"`
	JobTitle          string          `json:"jobTitle,omitempty"`
	PasswordProfile   passwordProfile `json:"passwordProfile"`
}

type userResource struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	UserPrincipalName string `json:"userPrincipalName"`
}

func (s *Session) CreateAccount(ctx context.Context, profile workflow.AccountProfile) (workflow.AccountRecord, error) {
	body := createUserRequest{
		AccountEnabled:    profile.Enabled,
		DisplayName:       profile.DisplayName,
		MailNickname:      profile.MailNickname,
		UserPrincipalName: profile.PrincipalName,
		Department:        profile.Department,
		JobTitle:          profile.JobTitle,
		PasswordProfile: passwordProfile{
			Password:                      profile.Password,
			ForceChangePasswordNextSignIn: profile.ForcePasswordChange,
		},
	}

	var user userResource
	if err := s.postJSON(ctx, "/v1.0/users", body, &user); err != nil {
		return workflow.AccountRecord{}, err
	}

	return workflow.AccountRecord{
		ID:            user.ID,
		PrincipalName: user.UserPrincipalName,
		DisplayName:   user.DisplayName,
	}, nil
}

func (s *Session) AddGroupMember(ctx context.Context, groupID, memberID string) error {
	body := map[string]string{
		"@odata.id": fmt.Sprintf("%s/v1.0/directoryObjects/%s", s.client.apiBase, memberID),
	}
	path := fmt.Sprintf("/v1.0/groups/%s/members/$ref", groupID)
	return s.postJSON(ctx, path, body, nil)
}

func (s *Session) AssignLicense(ctx context.Context, accountID, skuID string) error {
	body := map[string]any{
		"addLicenses":    []map[string]string{{"skuId": skuID}},
		"removeLicenses": []string{},
	}
	path := fmt.Sprintf("/v1.0/users/%s/assignLicense", accountID)
	return s.postJSON(ctx, path, body, nil)
}

// Close invalidates the session locally; the wire protocol has no logout
// call. Closing twice is an error so callers notice double-release bugs.
func (s *Session) Close(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.token = ""
	return nil
}

func (s *Session) postJSON(ctx context.Context, path string, body, out any) error {
	if s.closed {
		return ErrSessionClosed
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.apiBase+path,
		bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}
