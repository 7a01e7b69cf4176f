package dto

type OnboardRequest struct {
	DisplayName   string   `json:"display_name" binding:"required"`
	PrincipalName string   `json:"principal_name" binding:"required"`
	MailNickname  string   `json:"mail_nickname" binding:"required"`
	Department    string   `json:"department"`
	JobTitle      string   `json:"job_title"`
	Groups        []string `json:"groups"`
	LicenseSKU    string   `json:"license_sku"`
	Notify        bool     `json:"notify"`
}

type WarningInfo struct {
	Step    string `json:"step"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

type OnboardResponse struct {
	Success       bool          `json:"success"`
	AccountID     string        `json:"account_id,omitempty"`
	PrincipalName string        `json:"principal_name"`
	DisplayName   string        `json:"display_name"`
	Credential    string        `json:"credential,omitempty"`
	Message       string        `json:"message"`
	Error         string        `json:"error,omitempty"`
	Warnings      []WarningInfo `json:"warnings,omitempty"`
	AuditID       string        `json:"audit_id,omitempty"`
}
