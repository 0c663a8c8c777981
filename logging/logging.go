// Package logging defines the pluggable access/message logging contracts
// (spec §6 access_logger, message_logger) and ships the stderr default the
// Acceptor falls back to.
package logging

import (
	"log"
	"os"
	"time"

	"github.com/originhttp/core/status"
)

// AccessEntry summarizes one completed request for an AccessLogger.
type AccessEntry struct {
	RemoteAddr string
	Method     string
	URI        string
	Protocol   string
	Status     status.Code
	Took       time.Duration
	// RequestID correlates the access line to whatever the message logger
	// recorded during processing (populated from Request.ID).
	RequestID string
}

// AccessLogger is a thread-safe sink for completed requests. The core
// serializes nothing on its behalf (spec §5 "Logger implementations must be
// thread-safe").
type AccessLogger interface {
	LogAccess(AccessEntry)
}

// Level distinguishes warnings (non-fatal, logged and ignored) from errors
// (logged and, if headers not sent, turned into a 500).
type Level int

const (
	LevelWarning Level = iota
	LevelError
)

// MessageLogger receives operational messages: parse warnings, handler
// panics, body-parse failures.
type MessageLogger interface {
	Log(level Level, msg string, err error)
}

// Nop discards everything. Useful for tests and embedders who want silence.
type Nop struct{}

func (Nop) LogAccess(AccessEntry)             {}
func (Nop) Log(Level, string, error)          {}

// Stderr is the documented default (spec §6: "defaults: write to standard
// error"), grounded on the teacher's own log.Printf-to-stderr habit in
// indi.go.
type Stderr struct {
	log *log.Logger
}

func NewStderr() *Stderr {
	return &Stderr{log: log.New(os.Stderr, "", log.LstdFlags)}
}

func (s *Stderr) LogAccess(e AccessEntry) {
	s.log.Printf("%s %s %s %s -> %d (%s) [%s]",
		e.RemoteAddr, e.Method, e.URI, e.Protocol, e.Status, e.Took, e.RequestID)
}

func (s *Stderr) Log(level Level, msg string, err error) {
	prefix := "WARN"
	if level == LevelError {
		prefix = "ERROR"
	}

	if err != nil {
		s.log.Printf("%s: %s: %s", prefix, msg, err)
		return
	}

	s.log.Printf("%s: %s", prefix, msg)
}
