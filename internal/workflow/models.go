package workflow

import (
	"context"
	"errors"
	"fmt"
)

// Configuration keys the workflow resolves before touching the directory.
const (
	KeyTenantID      = "tenant_id"
	KeyCredentialRef = "credential_ref"
	KeyNotifyAddress = "notify_address"
)

var ErrInvalidRequest = errors.New("invalid provisioning request")

// ConfigSource resolves named configuration values. Missing required keys
// abort the workflow before any directory call is made.
type ConfigSource interface {
	Get(key string) (string, error)
}

// DirectoryService opens authenticated sessions against the identity
// provider. The session is the single stateful resource the workflow holds.
type DirectoryService interface {
	Connect(ctx context.Context, tenantID, credentialRef string) (Session, error)
}

// Session is an authenticated directory session. It is not safe for
// concurrent use; the workflow accesses it strictly sequentially and closes
// it exactly once.
type Session interface {
	CreateAccount(ctx context.Context, profile AccountProfile) (AccountRecord, error)
	AddGroupMember(ctx context.Context, groupID, memberID string) error
	AssignLicense(ctx context.Context, accountID, skuID string) error
	Close(ctx context.Context) error
}

// NotificationSink delivers a stakeholder notification. Delivery is
// best-effort from the workflow's point of view.
type NotificationSink interface {
	Send(ctx context.Context, address, subject, body string) error
}

// Request is the immutable input to a single provisioning run.
type Request struct {
	DisplayName   string
	PrincipalName string
	MailNickname  string
	Department    string
	JobTitle      string
	Groups        []string
	LicenseSKU    string
	Notify        bool
}

// Validate enforces the request invariant: the three identity fields are
// mandatory. Group and license identifiers are deliberately not validated
// locally; the directory is the authority on their format.
func (r Request) Validate() error {
	if r.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", ErrInvalidRequest)
	}
	if r.PrincipalName == "" {
		return fmt.Errorf("%w: principal name is required", ErrInvalidRequest)
	}
	if r.MailNickname == "" {
		return fmt.Errorf("%w: mail nickname is required", ErrInvalidRequest)
	}
	return nil
}

// AccountProfile is the payload submitted to the directory's create call.
type AccountProfile struct {
	DisplayName         string
	PrincipalName       string
	MailNickname        string
	Department          string
	JobTitle            string
	Password            string
	ForcePasswordChange bool
	Enabled             bool
}

// AccountRecord is the directory's view of the created account. The workflow
// only ever reads the identifier.
type AccountRecord struct {
	ID            string
	PrincipalName string
	DisplayName   string
}

// Warning step names.
const (
	StepGroupAssignment   = "group_assignment"
	StepLicenseAssignment = "license_assignment"
	StepNotification      = "notification"
)

// Warning records a non-fatal failure of an enrichment step. Warnings never
// change the overall success of a run.
type Warning struct {
	Step    string `json:"step"`
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
}

// Result is the single, terminal outcome of a provisioning run.
type Result struct {
	Success       bool      `json:"success"`
	AccountID     string    `json:"account_id,omitempty"`
	PrincipalName string    `json:"principal_name"`
	DisplayName   string    `json:"display_name"`
	Credential    string    `json:"credential,omitempty"`
	Message       string    `json:"message"`
	Error         string    `json:"error,omitempty"`
	Warnings      []Warning `json:"warnings,omitempty"`
}
