// Package output provides JSONL output for status operation results.
//
// Output is structured as typed record envelopes containing account
// statuses, permission statuses, and errors. Each line is a
// self-contained JSON object that can be parsed independently.
package output

import (
	"encoding/json"
	"errors"
	"time"
)

// Record type constants define the envelope types for JSONL output.
// These follow the pattern: cirrus.<type>.v<version>
const (
	// TypeAccount identifies account-status records.
	TypeAccount = "cirrus.account.v1"

	// TypePermission identifies permission-status records.
	TypePermission = "cirrus.permission.v1"

	// TypeError identifies error records.
	TypeError = "cirrus.error.v1"
)

// Record is the envelope for all JSONL output.
//
// Each line of JSONL output contains a Record with a type-specific
// payload in the Data field. The type field determines how to
// interpret the Data payload.
type Record struct {
	// Type identifies the record type (e.g., "cirrus.account.v1").
	Type string `json:"type"`

	// TS is the timestamp when the record was created (RFC3339Nano).
	TS time.Time `json:"ts"`

	// JobID is the correlation ID for this invocation.
	JobID string `json:"job_id"`

	// Provider identifies the backing cloud provider (e.g., "s3").
	Provider string `json:"provider"`

	// Data contains the type-specific payload as raw JSON.
	Data json.RawMessage `json:"data"`
}

// AccountRecord is the data payload for account-status results.
type AccountRecord struct {
	// State is the classified account state.
	State string `json:"state"`

	// Guidance is the user-facing advice for non-trivial states.
	Guidance string `json:"guidance,omitempty"`
}

// PermissionRecord is the data payload for permission-status results.
type PermissionRecord struct {
	// Permission is the permission identifier that was negotiated.
	Permission string `json:"permission"`

	// State is the classified grant state.
	State string `json:"state"`

	// Guidance is the user-facing advice for non-trivial states.
	Guidance string `json:"guidance,omitempty"`
}

// ErrorRecord is the data payload for classified failures.
type ErrorRecord struct {
	// Kind is the domain error kind, or "unclassified" for errors
	// outside the provider taxonomy.
	Kind string `json:"kind"`

	// Message is the user-facing guidance, if the kind carries one.
	Message string `json:"message,omitempty"`

	// RetryAfterSeconds is the suggested wait before retrying.
	RetryAfterSeconds int `json:"retry_after_seconds,omitempty"`

	// Retryable reports whether waiting and retrying can help.
	Retryable bool `json:"retryable"`

	// Detail is the raw error text for diagnostics.
	Detail string `json:"detail,omitempty"`
}

// KindUnclassified marks errors that carry no provider error code.
const KindUnclassified = "unclassified"

// Writer errors.
var (
	// ErrWriterClosed is returned when writing to a closed writer.
	ErrWriterClosed = errors.New("writer is closed")
)

// WriteError wraps errors that occur during write operations.
type WriteError struct {
	Op  string // Operation that failed (e.g., "marshal_data", "write")
	Err error  // Underlying error
}

func (e *WriteError) Error() string {
	return "output: " + e.Op + ": " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
