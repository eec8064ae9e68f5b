package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidAuditRange is returned when an audit query ends before it starts.
var ErrInvalidAuditRange = errors.New("audit range end is before its start")

// AuditLog records who changed which account, loan or user, and the state
// of the resource on either side of the change.
type AuditLog struct {
	ID           string
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       string
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a decoded JSON object.
type JSON map[string]any

type AuditAction string

const (
	AuditActionAccountOpen    AuditAction = "account.open"
	AuditActionAccountApprove AuditAction = "account.approve"
	AuditActionAccountSuspend AuditAction = "account.suspend"

	AuditActionLoanApprove AuditAction = "loan.approve"
	AuditActionLoanReject  AuditAction = "loan.reject"

	AuditActionUserRegister AuditAction = "user.register"
	AuditActionUserUpdate   AuditAction = "user.update"
)

type AuditStatus string

const AuditStatusSuccess AuditStatus = "success"

// MarshalState flattens v through its JSON encoding so it can be stored as
// a before/after snapshot or an event payload.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter narrows an audit query. Empty fields match everything; the
// time range is half open, [StartDate, EndDate).
type AuditFilter struct {
	UserID       string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// Validate rejects a range whose end precedes its start.
func (f AuditFilter) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return ErrInvalidAuditRange
	}
	return nil
}
