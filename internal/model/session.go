package model

import "strings"

// Session records which account, if any, is currently authenticated.
// Absence of a persisted session means Anonymous.
type Session struct {
	Email string `json:"email"`
}

// Namespace identifies the storage partition a user's ledger and profile
// live under. It is always derived from a normalized email, never composed
// from arbitrary strings, so partitions cannot collide.
type Namespace string

// GuestNamespace is the reserved partition for the unauthenticated state.
// Mutating operations are rejected before ever writing under it.
const GuestNamespace Namespace = "__guest__"

// NamespaceFor derives the storage partition for an account email.
func NamespaceFor(email string) Namespace {
	return Namespace(strings.ToLower(strings.TrimSpace(email)))
}
