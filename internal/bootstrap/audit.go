package bootstrap

import (
	"context"
	"time"
)

// AuditLog is a flat record of a privileged or lifecycle action.
type AuditLog struct {
	Timestamp time.Time      `json:"timestamp"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Detail    map[string]any `json:"detail,omitempty"`
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
