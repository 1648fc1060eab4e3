// Package ident generates transaction identifiers and computes the
// password checksum used by the accounts directory.
package ident

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
)

// NewID returns an identifier unique among ids generated by a single
// process: the current time in milliseconds rendered in base 36, followed
// by six random hex characters. There is no cross-process uniqueness
// guarantee and none is needed; ids only have to be unique within one
// user's ledger.
func NewID() string {
	prefix := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return prefix + suffix
}

// Checksum returns a deterministic, order-sensitive digest of text,
// formatted as an unsigned 32-bit decimal string.
//
// This is NOT a cryptographic hash. It provides no confidentiality and no
// tamper resistance, and collisions are possible; it exists only so the
// accounts directory never stores a plaintext password in the visible
// store. It must never be treated as secure storage.
//
// The digest is the classic rolling hash h = h*31 + codeunit over the
// UTF-16 code units of text, truncated to 32 bits.
func Checksum(text string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(text)) {
		h = h<<5 - h + int32(u)
	}
	return strconv.FormatUint(uint64(uint32(h)), 10)
}
