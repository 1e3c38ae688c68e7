package models

import "time"

// AuditAction constants represent admin actions to be logged.
const (
	AuditActionLogin            = "LOGIN"
	AuditActionLogout           = "LOGOUT"
	AuditActionNoticeCreate     = "NOTICE_CREATE"
	AuditActionNoticeUpdate     = "NOTICE_UPDATE"
	AuditActionNoticeDelete     = "NOTICE_DELETE"
	AuditActionNoticeVisibility = "NOTICE_VISIBILITY"
	AuditActionBoardExport      = "BOARD_EXPORT"
)

// AuditLog represents an audit trail record for an admin mutation.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	NewValues  []byte    `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
