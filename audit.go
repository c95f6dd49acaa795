package wafengine

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AuditRecord is one logged disposition, formatted the way a MatchLog
// destination expects: a single self-contained line per request.
type AuditRecord struct {
	Time         time.Time
	RequestID    string
	Method       string
	URI          string
	RemoteAddr   string
	Country      string // resolved by an optional GeoAnnotator; "" when none is wired
	Action       string
	RulesMatched int
	Scores       map[string]int
	MatchVars    string
}

// AuditLogger writes AuditRecords to the destination named by a MatchLog
// directive: a plain file path (opened append/create) or a "|command"
// pipe to an external process's stdin, per spec.md §6. Exactly one write
// per record reaches the destination, serialized by mu.
//
// Adapted from the teacher's blockRequest (response.go), which logs a
// structured warning through zap on every blocked request; this splits
// that idea in two, an operational zap log plus a dedicated audit
// destination that is a plain file by default but may be a sub-process.
type AuditLogger struct {
	logger *zap.Logger
	out    io.WriteCloser
	cmd    *exec.Cmd
	mu     sync.Mutex

	// Geo, if set, resolves AuditRecord.Country from RemoteAddr whenever
	// Write receives a record with an empty Country, so callers that
	// don't bother with geo lookups still get one for free once a host
	// wires an annotator in.
	Geo *GeoAnnotator
}

// NewAuditLogger opens destination. A leading "|" runs the remainder as a
// command and pipes records to its stdin; anything else is a file path
// opened in append mode, created if missing.
func NewAuditLogger(destination string, logger *zap.Logger) (*AuditLogger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	al := &AuditLogger{logger: logger}

	if destination == "" {
		return al, nil
	}

	if strings.HasPrefix(destination, "|") {
		cmdline := strings.TrimSpace(strings.TrimPrefix(destination, "|"))
		cmd := exec.Command("/bin/sh", "-c", cmdline)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("audit log pipe: %w", err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("audit log pipe start: %w", err)
		}
		al.cmd = cmd
		al.out = stdin
		return al, nil
	}

	f, err := os.OpenFile(destination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit log file: %w", err)
	}
	al.out = f
	return al, nil
}

// Write renders rec as a single line and sends it to the configured
// destination, if any; it always also emits a structured zap record at
// Warn (blocked/dropped) or Info (allowed/logged) so operational
// dashboards see every disposition even without a MatchLog destination.
func (al *AuditLogger) Write(rec AuditRecord) {
	if rec.Country == "" && al.Geo != nil {
		rec.Country = al.Geo.Country(rec.RemoteAddr)
	}

	fields := []zap.Field{
		zap.String("request_id", rec.RequestID),
		zap.String("method", rec.Method),
		zap.String("uri", rec.URI),
		zap.String("remote_addr", rec.RemoteAddr),
		zap.String("country", rec.Country),
		zap.String("action", rec.Action),
		zap.Int("rules_matched", rec.RulesMatched),
		zap.String("match_vars", rec.MatchVars),
	}
	if rec.Action == ActionBlock.String() || rec.Action == ActionDrop.String() {
		al.logger.Warn("request scored", fields...)
	} else {
		al.logger.Info("request scored", fields...)
	}

	if al.out == nil {
		return
	}
	line := fmt.Sprintf("%s id=%s method=%s uri=%q remote=%s country=%s action=%s rules_matched=%d scores=%v match_vars=%q\n",
		rec.Time.Format(time.RFC3339), rec.RequestID, rec.Method, rec.URI, rec.RemoteAddr, rec.Country,
		rec.Action, rec.RulesMatched, rec.Scores, rec.MatchVars)

	al.mu.Lock()
	defer al.mu.Unlock()
	if _, err := al.out.Write([]byte(line)); err != nil {
		al.logger.Error("failed to write audit record", zap.Error(err))
	}
}

// Close releases the underlying file or pipe, waiting for a piped
// sub-process to exit.
func (al *AuditLogger) Close() error {
	if al.out == nil {
		return nil
	}
	if err := al.out.Close(); err != nil {
		return err
	}
	if al.cmd != nil {
		return al.cmd.Wait()
	}
	return nil
}
