package dto

import "github.com/onboardly/dirprov/internal/audit"

type AuditListResponse struct {
	Records []audit.Record `json:"records"`
	Count   int            `json:"count"`
}
