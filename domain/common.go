package domain

import (
	"errors"
	"strings"
)

const (
	RoleAdmin     = "admin"
	RoleSuperuser = "superuser"

	// ApprovedByPlaceholder is a legacy value some clients wrote into
	// approved_by instead of leaving it empty. It still means "pending".
	ApprovedByPlaceholder = "Pending"

	StatusAll      = "all"
	StatusApproved = "approved"
	StatusPending  = "pending"
)

var (
	MessageFailedBodyRequest    = "failed to process request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "invalid or expired token"
	MessageSuperuserOnly        = "superuser access required"

	ErrParseUUID         = errors.New("failed to parse UUID")
	ErrTokenNotFound     = errors.New("authorization token not found")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrSuperuserRequired = errors.New("superuser access required")
)

// IsApproved derives a receipt's review status from its approved_by
// field: any non-empty value other than the legacy placeholder counts
// as approved.
func IsApproved(approvedBy string) bool {
	return approvedBy != "" && approvedBy != ApprovedByPlaceholder
}

// MatchesStatus reports whether a receipt with the given approved_by
// value passes a status filter of "all", "approved" or "pending".
func MatchesStatus(approvedBy, status string) bool {
	switch status {
	case StatusApproved:
		return IsApproved(approvedBy)
	case StatusPending:
		return !IsApproved(approvedBy)
	default:
		return true
	}
}

// MatchesSearch reports whether any of the given fields contains the
// query as a case-insensitive substring. An empty query matches
// everything.
func MatchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
