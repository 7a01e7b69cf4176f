package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onboardly/dirprov/internal/api/http/dto"
	"github.com/onboardly/dirprov/internal/audit"
	"github.com/onboardly/dirprov/internal/workflow"
)

// Provisioner runs one onboarding request to completion.
type Provisioner interface {
	Provision(ctx context.Context, req workflow.Request) workflow.Result
}

type OnboardHandler struct {
	provisioner Provisioner
	auditStore  *audit.Store
}

func NewOnboardHandler(provisioner Provisioner, auditStore *audit.Store) *OnboardHandler {
	return &OnboardHandler{
		provisioner: provisioner,
		auditStore:  auditStore,
	}
}

func (h *OnboardHandler) Onboard(ctx *gin.Context) {
	var req dto.OnboardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wfReq := workflow.Request{
		DisplayName:   req.DisplayName,
		PrincipalName: req.PrincipalName,
		MailNickname:  req.MailNickname,
		Department:    req.Department,
		JobTitle:      req.JobTitle,
		Groups:        req.Groups,
		LicenseSKU:    req.LicenseSKU,
		Notify:        req.Notify,
	}
	result := h.provisioner.Provision(ctx.Request.Context(), wfReq)

	resp := toOnboardResponse(result)

	if h.auditStore != nil {
		auditID, err := h.auditStore.Record(ctx.Request.Context(), wfReq, result)
		if err != nil {
			// Auditing never changes the provisioning outcome.
			slog.Warn("Failed to write audit record", "upn", req.PrincipalName, "error", err)
		} else {
			resp.AuditID = auditID
		}
	}

	if !result.Success {
		ctx.JSON(http.StatusBadGateway, resp)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

func toOnboardResponse(res workflow.Result) dto.OnboardResponse {
	warnings := make([]dto.WarningInfo, len(res.Warnings))
	for i, w := range res.Warnings {
		warnings[i] = dto.WarningInfo{Step: w.Step, Target: w.Target, Message: w.Message}
	}
	if len(warnings) == 0 {
		warnings = nil
	}
	return dto.OnboardResponse{
		Success:       res.Success,
		AccountID:     res.AccountID,
		PrincipalName: res.PrincipalName,
		DisplayName:   res.DisplayName,
		Credential:    res.Credential,
		Message:       res.Message,
		Error:         res.Error,
		Warnings:      warnings,
	}
}
