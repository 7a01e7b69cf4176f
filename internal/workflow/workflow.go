package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultPropagationDelay is the pause between account creation and the
// enrichment calls, giving the directory time to propagate the new object.
const DefaultPropagationDelay = 10 * time.Second

// Workflow orchestrates one account provisioning run against the directory.
// Collaborators are injected; the workflow holds no ambient state.
type Workflow struct {
	config           ConfigSource
	directory        DirectoryService
	notifier         NotificationSink
	propagationDelay time.Duration
}

type Option func(*Workflow)

// WithPropagationDelay overrides the post-creation propagation pause.
func WithPropagationDelay(d time.Duration) Option {
	return func(w *Workflow) {
		w.propagationDelay = d
	}
}

func New(config ConfigSource, directory DirectoryService, notifier NotificationSink, opts ...Option) *Workflow {
	w := &Workflow{
		config:           config,
		directory:        directory,
		notifier:         notifier,
		propagationDelay: DefaultPropagationDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Provision executes the full onboarding sequence and never lets a
// collaborator failure escape: every outcome is a Result. Configuration
// resolution, authentication and account creation are fatal; group, license
// and notification failures are downgraded to warnings. The directory
// session, once opened, is closed exactly once on every exit path.
func (w *Workflow) Provision(ctx context.Context, req Request) Result {
	if err := req.Validate(); err != nil {
		return failure(req, err.Error())
	}

	tenantID, err := w.config.Get(KeyTenantID)
	if err != nil {
		return failure(req, fmt.Sprintf("resolve tenant identifier: %v", err))
	}
	credentialRef, err := w.config.Get(KeyCredentialRef)
	if err != nil {
		return failure(req, fmt.Sprintf("resolve credential reference: %v", err))
	}
	// The notification address is optional: absent means no delivery channel
	// is configured, not a fatal misconfiguration.
	notifyAddress, err := w.config.Get(KeyNotifyAddress)
	if err != nil {
		notifyAddress = ""
	}

	session, err := w.directory.Connect(ctx, tenantID, credentialRef)
	if err != nil {
		return failure(req, fmt.Sprintf("connect to directory: %v", err))
	}
	defer func() {
		if err := session.Close(ctx); err != nil {
			slog.Warn("Directory disconnect failed", "upn", req.PrincipalName, "error", err)
		}
	}()

	credential, err := NewCredential()
	if err != nil {
		return failure(req, err.Error())
	}

	account, err := session.CreateAccount(ctx, AccountProfile{
		DisplayName:         req.DisplayName,
		PrincipalName:       req.PrincipalName,
		MailNickname:        req.MailNickname,
		Department:          req.Department,
		JobTitle:            req.JobTitle,
		Password:            credential,
		ForcePasswordChange: true,
		Enabled:             true,
	})
	if err != nil {
		return failure(req, fmt.Sprintf("create account: %v", err))
	}
	slog.Info("Account created", "upn", req.PrincipalName, "account_id", account.ID)

	if w.propagationDelay > 0 {
		time.Sleep(w.propagationDelay)
	}

	r := &run{
		req:           req,
		session:       session,
		account:       account,
		credential:    credential,
		notifyAddress: notifyAddress,
		notifier:      w.notifier,
	}

	// Enrichment steps run in order; each returns only warnings and can
	// never flip the run back to failure.
	var warnings []Warning
	for _, step := range []func(context.Context) []Warning{
		r.assignGroups,
		r.assignLicense,
		r.sendNotification,
	} {
		warnings = append(warnings, step(ctx)...)
	}

	message := fmt.Sprintf("provisioned account %s for %s", account.ID, req.PrincipalName)
	if len(warnings) > 0 {
		message = fmt.Sprintf("%s (%d warnings)", message, len(warnings))
	}

	return Result{
		Success:       true,
		AccountID:     account.ID,
		PrincipalName: req.PrincipalName,
		DisplayName:   req.DisplayName,
		Credential:    credential,
		Message:       message,
		Warnings:      warnings,
	}
}

// run carries the per-invocation state shared by the enrichment steps.
type run struct {
	req           Request
	session       Session
	account       AccountRecord
	credential    string
	notifyAddress string
	notifier      NotificationSink
}

func (r *run) assignGroups(ctx context.Context) []Warning {
	var warnings []Warning
	for _, groupID := range r.req.Groups {
		if err := r.session.AddGroupMember(ctx, groupID, r.account.ID); err != nil {
			slog.Warn("Group assignment failed", "upn", r.req.PrincipalName, "group_id", groupID, "error", err)
			warnings = append(warnings, Warning{
				Step:    StepGroupAssignment,
				Target:  groupID,
				Message: err.Error(),
			})
			continue
		}
		slog.Debug("Group assigned", "upn", r.req.PrincipalName, "group_id", groupID)
	}
	return warnings
}

func (r *run) assignLicense(ctx context.Context) []Warning {
	if r.req.LicenseSKU == "" {
		return nil
	}
	if err := r.session.AssignLicense(ctx, r.account.ID, r.req.LicenseSKU); err != nil {
		slog.Warn("License assignment failed", "upn", r.req.PrincipalName, "sku_id", r.req.LicenseSKU, "error", err)
		return []Warning{{
			Step:    StepLicenseAssignment,
			Target:  r.req.LicenseSKU,
			Message: err.Error(),
		}}
	}
	slog.Debug("License assigned", "upn", r.req.PrincipalName, "sku_id", r.req.LicenseSKU)
	return nil
}

func (r *run) sendNotification(ctx context.Context) []Warning {
	if !r.req.Notify || r.notifyAddress == "" || r.notifier == nil {
		return nil
	}
	subject := fmt.Sprintf("Account provisioned for %s", r.req.DisplayName)
	body := notificationBody(r.req, r.account, r.credential)
	if err := r.notifier.Send(ctx, r.notifyAddress, subject, body); err != nil {
		slog.Warn("Notification delivery failed", "upn", r.req.PrincipalName, "address", r.notifyAddress, "error", err)
		return []Warning{{
			Step:    StepNotification,
			Target:  r.notifyAddress,
			Message: err.Error(),
		}}
	}
	slog.Info("Notification sent", "upn", r.req.PrincipalName, "address", r.notifyAddress)
	return nil
}

func notificationBody(req Request, account AccountRecord, credential string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A directory account has been provisioned.\n\n")
	fmt.Fprintf(&b, "Display name:   %s\n", req.DisplayName)
	fmt.Fprintf(&b, "Principal name: %s\n", req.PrincipalName)
	fmt.Fprintf(&b, "Account ID:     %s\n", account.ID)
	fmt.Fprintf(&b, "Temporary password: %s\n\n", credential)
	b.WriteString("The password must be changed at next sign-in.\n")
	return b.String()
}

func failure(req Request, errMsg string) Result {
	return Result{
		Success:       false,
		PrincipalName: req.PrincipalName,
		DisplayName:   req.DisplayName,
		Message:       "provisioning failed",
		Error:         errMsg,
	}
}
