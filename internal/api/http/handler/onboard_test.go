package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/onboardly/dirprov/internal/api/http/dto"
	"github.com/onboardly/dirprov/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubProvisioner struct {
	gotRequest workflow.Request
	result     workflow.Result
}

func (s *stubProvisioner) Provision(ctx context.Context, req workflow.Request) workflow.Result {
	s.gotRequest = req
	return s.result
}

func setupOnboardRouter(h *OnboardHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/onboard", h.Onboard)
	return r
}

func postOnboard(t *testing.T, r *gin.Engine, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, _ := http.NewRequest("POST", "/api/v1/onboard", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOnboardSuccess(t *testing.T) {
	stub := &stubProvisioner{result: workflow.Result{
		Success:       true,
		AccountID:     "acct-1",
		PrincipalName: "jdoe@example.com",
		DisplayName:   "Jane Doe",
		Credential:    "Abcdef123!@#",
		Message:       "provisioned account acct-1 for jdoe@example.com",
	}}
	r := setupOnboardRouter(NewOnboardHandler(stub, nil))

	w := postOnboard(t, r, dto.OnboardRequest{
		DisplayName:   "Jane Doe",
		PrincipalName: "jdoe@example.com",
		MailNickname:  "jdoe",
		Groups:        []string{"g1", "g2"},
		LicenseSKU:    "SKU1",
		Notify:        true,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.OnboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "acct-1", resp.AccountID)
	assert.Equal(t, "Abcdef123!@#", resp.Credential)

	assert.Equal(t, []string{"g1", "g2"}, stub.gotRequest.Groups)
	assert.Equal(t, "SKU1", stub.gotRequest.LicenseSKU)
	assert.True(t, stub.gotRequest.Notify)
}

func TestOnboardDirectoryFailure(t *testing.T) {
	stub := &stubProvisioner{result: workflow.Result{
		Success:       false,
		PrincipalName: "jdoe@example.com",
		DisplayName:   "Jane Doe",
		Message:       "provisioning failed",
		Error:         "create account: directory API error Request_BadRequest: duplicate",
	}}
	r := setupOnboardRouter(NewOnboardHandler(stub, nil))

	w := postOnboard(t, r, dto.OnboardRequest{
		DisplayName:   "Jane Doe",
		PrincipalName: "jdoe@example.com",
		MailNickname:  "jdoe",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp dto.OnboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.AccountID)
	assert.Empty(t, resp.Credential)
	assert.Contains(t, resp.Error, "create account")
}

func TestOnboardSuccessWithWarnings(t *testing.T) {
	stub := &stubProvisioner{result: workflow.Result{
		Success:       true,
		AccountID:     "acct-1",
		PrincipalName: "jdoe@example.com",
		DisplayName:   "Jane Doe",
		Credential:    "Abcdef123!@#",
		Message:       "provisioned account acct-1 for jdoe@example.com (1 warnings)",
		Warnings: []workflow.Warning{
			{Step: workflow.StepGroupAssignment, Target: "g2", Message: "group not found"},
		},
	}}
	r := setupOnboardRouter(NewOnboardHandler(stub, nil))

	w := postOnboard(t, r, dto.OnboardRequest{
		DisplayName:   "Jane Doe",
		PrincipalName: "jdoe@example.com",
		MailNickname:  "jdoe",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.OnboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "g2", resp.Warnings[0].Target)
}

func TestOnboardMissingMandatoryFields(t *testing.T) {
	stub := &stubProvisioner{}
	r := setupOnboardRouter(NewOnboardHandler(stub, nil))

	w := postOnboard(t, r, map[string]string{"display_name": "Jane Doe"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.gotRequest.DisplayName, "invalid payloads must not reach the workflow")
}

func TestAuditListWithoutStore(t *testing.T) {
	r := gin.New()
	h := NewAuditHandler(nil)
	r.GET("/api/v1/audit", h.ListRecent)

	req, _ := http.NewRequest("GET", "/api/v1/audit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
