package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	assert.NotNil(t, w)
	assert.Equal(t, "job-123", w.jobID)
	assert.Equal(t, "s3", w.provider)
}

func TestJSONLWriter_WriteAccount(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	acct := &AccountRecord{
		State:    "could-not-determine",
		Guidance: "Check your connection and try again.",
	}

	err := w.WriteAccount(context.Background(), acct)
	require.NoError(t, err)

	var record Record
	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, TypeAccount, record.Type)
	assert.Equal(t, "job-123", record.JobID)
	assert.Equal(t, "s3", record.Provider)
	assert.False(t, record.TS.IsZero())

	var acctData AccountRecord
	err = json.Unmarshal(record.Data, &acctData)
	require.NoError(t, err)

	assert.Equal(t, "could-not-determine", acctData.State)
	assert.Equal(t, "Check your connection and try again.", acctData.Guidance)
}

func TestJSONLWriter_WritePermission(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-456", "s3")

	perm := &PermissionRecord{
		Permission: "user-discoverability",
		State:      "granted",
	}

	err := w.WritePermission(context.Background(), perm)
	require.NoError(t, err)

	var record Record
	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, TypePermission, record.Type)

	var permData PermissionRecord
	err = json.Unmarshal(record.Data, &permData)
	require.NoError(t, err)

	assert.Equal(t, "user-discoverability", permData.Permission)
	assert.Equal(t, "granted", permData.State)
	assert.Empty(t, permData.Guidance)
}

func TestJSONLWriter_WriteErrorRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	rec := &ErrorRecord{
		Kind:              "request-rate-limited",
		Message:           "Too many requests. Try again shortly.",
		RetryAfterSeconds: 5,
		Retryable:         true,
	}

	err := w.WriteError(context.Background(), rec)
	require.NoError(t, err)

	var record Record
	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, TypeError, record.Type)

	var errData ErrorRecord
	err = json.Unmarshal(record.Data, &errData)
	require.NoError(t, err)

	assert.Equal(t, "request-rate-limited", errData.Kind)
	assert.Equal(t, 5, errData.RetryAfterSeconds)
	assert.True(t, errData.Retryable)
}

func TestJSONLWriter_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	require.NoError(t, w.WriteAccount(context.Background(), &AccountRecord{State: "available"}))
	require.NoError(t, w.WritePermission(context.Background(), &PermissionRecord{Permission: "user-discoverability", State: "denied"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	// Each line must parse independently.
	for _, line := range lines {
		var record Record
		assert.NoError(t, json.Unmarshal([]byte(line), &record))
	}
}

func TestJSONLWriter_WriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	require.NoError(t, w.Close())

	err := w.WriteAccount(context.Background(), &AccountRecord{State: "available"})
	assert.ErrorIs(t, err, ErrWriterClosed)
}

func TestJSONLWriter_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.WriteAccount(ctx, &AccountRecord{State: "available"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestJSONLWriter_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf, "job-123", "s3")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.WriteAccount(context.Background(), &AccountRecord{State: "available"})
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		var record Record
		assert.NoError(t, json.Unmarshal([]byte(line), &record), "interleaved write corrupted a line")
	}
}
