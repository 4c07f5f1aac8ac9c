package security

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"

	"fsgate/internal/infra/tracer"
)

// AuditRecord is one mutating filesystem operation. Path is always the
// virtual path as the caller supplied it.
type AuditRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Op        string    `json:"op"`
	Path      string    `json:"path"`
	Outcome   string    `json:"outcome"` // "ok" or "error"
	Detail    string    `json:"detail,omitempty"`
}

// AuditLogger records mutating operations. Implementations must be safe for
// concurrent use.
type AuditLogger interface {
	Record(ctx context.Context, op, virtualPath, outcome, detail string)
	Close() error
}

// FileAuditLogger appends JSONL records to a file.
type FileAuditLogger struct {
	mu      sync.Mutex
	file    *os.File
	entropy *rand.Rand
}

// NewFileAuditLogger creates an audit logger that appends to the given path.
// The file is created with 0600 permissions if it does not exist.
func NewFileAuditLogger(path string) (*FileAuditLogger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &FileAuditLogger{
		file:    f,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Record writes one audit record as a single JSON line. Write failures are
// swallowed after being attached to the active span: auditing never blocks
// the operation it describes.
func (a *FileAuditLogger) Record(ctx context.Context, op, virtualPath, outcome, detail string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now().UTC()
	rec := AuditRecord{
		ID:        ulid.MustNew(ulid.Timestamp(now), a.entropy).String(),
		Timestamp: now,
		Op:        op,
		Path:      virtualPath,
		Outcome:   outcome,
		Detail:    detail,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if _, err := a.file.Write(append(data, '\n')); err != nil {
		span := trace.SpanFromContext(ctx)
		if span.IsRecording() {
			tracer.RecordError(span, fmt.Errorf("audit write: %w", err))
		}
		return
	}

	// Also emit as an OTel span event if a span is active.
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("audit."+op, trace.WithAttributes(
			tracer.StringAttr("audit.path", virtualPath),
			tracer.StringAttr("audit.outcome", outcome),
		))
	}
}

// Close flushes and closes the audit log file.
func (a *FileAuditLogger) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file.Close()
}

// NopAuditLogger discards all records. Used when auditing is disabled.
type NopAuditLogger struct{}

func (NopAuditLogger) Record(context.Context, string, string, string, string) {}
func (NopAuditLogger) Close() error                                           { return nil }
