package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/onboardly/dirprov/internal/workflow"
)

// Record is one persisted provisioning outcome. The transient credential is
// deliberately absent from the schema and from this type.
type Record struct {
	ID              string             `json:"id"`
	PrincipalName   string             `json:"principal_name"`
	DisplayName     string             `json:"display_name"`
	AccountID       string             `json:"account_id,omitempty"`
	Success         bool               `json:"success"`
	Message         string             `json:"message"`
	Error           string             `json:"error,omitempty"`
	Warnings        []workflow.Warning `json:"warnings"`
	RequestedGroups int                `json:"requested_groups"`
	CreatedAt       time.Time          `json:"created_at"`
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Record writes one provisioning outcome and returns the audit row ID.
func (s *Store) Record(ctx context.Context, req workflow.Request, res workflow.Result) (string, error) {
	warnings, err := marshalWarnings(res.Warnings)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO provisioning_audit
			(id, principal_name, display_name, account_id, success, message, error, warnings, requested_groups)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, res.PrincipalName, res.DisplayName, res.AccountID,
		res.Success, res.Message, res.Error, warnings, len(req.Groups))
	if err != nil {
		return "", fmt.Errorf("insert audit record: %w", err)
	}
	return id, nil
}

// ListRecent returns the newest records first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, principal_name, display_name, account_id, success, message, error, warnings, requested_groups, created_at
		FROM provisioning_audit
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var warnings []byte
		if err := rows.Scan(&r.ID, &r.PrincipalName, &r.DisplayName, &r.AccountID,
			&r.Success, &r.Message, &r.Error, &warnings, &r.RequestedGroups, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		if err := json.Unmarshal(warnings, &r.Warnings); err != nil {
			return nil, fmt.Errorf("decode warnings: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func marshalWarnings(warnings []workflow.Warning) ([]byte, error) {
	if warnings == nil {
		warnings = []workflow.Warning{}
	}
	encoded, err := json.Marshal(warnings)
	if err != nil {
		return nil, fmt.Errorf("encode warnings: %w", err)
	}
	return encoded, nil
}
