// Package services defines the business logic for routes, climbers, and
// climbs. This file centralizes the shared failure taxonomy: every store
// error crossing a service boundary is classified into one of a small set of
// kinds so the HTTP layer can map it to a status without inspecting driver
// errors, while logs keep the original cause.
//
// Kinds:
//   - KindConnection: could not obtain a usable store handle.
//   - KindStatement:  the store rejected the query/insert/update/delete
//     (includes constraint violations such as a duplicate review pair).
//   - KindNotFound:   zero matching rows on a point lookup or keyed update.
//   - KindParse:      a stored value (e.g. a difficulty label) matches no
//     known domain value — corrupt data, not a missing row.
//   - KindIntegrity:  the store returned rows that violate a domain
//     invariant (more than one review for a climber/route pair).
//
// Connection and statement failures surface to clients as the same upstream
// failure status; they stay distinct here for logging. Not-found and parse
// failures are client-facing. No kind is retried: every operation is
// attempted exactly once.
package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"gorm.io/gorm"

	"github.com/summitlog/go-crag-backend/internal/domain"
	"github.com/summitlog/go-crag-backend/internal/repo"
)

// FailureKind labels a classified store failure.
type FailureKind string

const (
	KindConnection FailureKind = "connection_failure"
	KindStatement  FailureKind = "statement_failure"
	KindNotFound   FailureKind = "not_found"
	KindParse      FailureKind = "parse_failure"
	KindIntegrity  FailureKind = "integrity_failure"
)

// StoreError wraps a store failure with its classification and the operation
// that produced it. Handlers branch on Kind; logs carry Op and the cause.
type StoreError struct {
	Kind FailureKind
	Op   string // e.g. "routes.get"
	Err  error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *StoreError) Unwrap() error { return e.Err }

// ClientFacing reports whether the failure maps to a client-facing status
// (bad request / not found) rather than an upstream-failure status.
func (e *StoreError) ClientFacing() bool {
	return e.Kind == KindNotFound || e.Kind == KindParse
}

// classify wraps err into a StoreError for the given operation. A nil err
// returns nil.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Kind: kindOf(err), Op: op, Err: err}
}

// kindOf buckets a raw repo/driver error into the taxonomy.
func kindOf(err error) FailureKind {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, repo.ErrNotFound):
		return KindNotFound
	case errors.Is(err, domain.ErrParseDifficultyRating):
		return KindParse
	case errors.Is(err, repo.ErrAmbiguousClimb):
		return KindIntegrity
	case isConnectionFailure(err):
		return KindConnection
	default:
		return KindStatement
	}
}

// isConnectionFailure detects errors raised while obtaining or using a store
// handle, as opposed to the store rejecting a well-delivered statement.
// Driver errors are not uniform across sqlite and postgres, so this checks
// the well-known sentinels first and falls back to message sniffing the same
// way duplicate-key detection has to.
func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "unable to open database file")
}

// IsDuplicatePair detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey.
func IsDuplicatePair(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
