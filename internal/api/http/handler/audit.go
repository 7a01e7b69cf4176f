package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/onboardly/dirprov/internal/api/http/dto"
	"github.com/onboardly/dirprov/internal/audit"
)

const defaultAuditLimit = 50

type AuditHandler struct {
	store *audit.Store
}

func NewAuditHandler(store *audit.Store) *AuditHandler {
	return &AuditHandler{store: store}
}

func (h *AuditHandler) ListRecent(ctx *gin.Context) {
	if h.store == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Audit storage is not configured"})
		return
	}

	limit := defaultAuditLimit
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	records, err := h.store.ListRecent(ctx.Request.Context(), limit)
	if err != nil {
		slog.Error("Failed to list audit records", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list audit records"})
		return
	}

	ctx.JSON(http.StatusOK, dto.AuditListResponse{
		Records: records,
		Count:   len(records),
	})
}
