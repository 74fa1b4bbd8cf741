package kernel

import (
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// finalTokenValue is the reserved sentinel marking a run that awaits no
// further external step. It is never persisted as a live token.
const finalTokenValue = "FINAL"

// ErrTokenIsNotConstructed indicates a zero-value Token that was not
// created via NewToken, FinalToken, or TokenFromString.
var ErrTokenIsNotConstructed = errs.NewValueIsRequiredError(
	"Token must be created via NewToken, FinalToken, or TokenFromString",
)

// Token is an opaque, single-use resumption capability. A live token is
// stored on the order record when the workflow enters a wait state; the
// external signal that completes the step must present the same token to
// advance the run. The reserved FINAL sentinel marks a terminal transition
// and suppresses token persistence.
//
// Token is immutable and safe for concurrent use.
type Token struct {
	value string
}

// NewToken mints a fresh resumption token for the next wait point.
func NewToken() Token {
	return Token{value: uuid.NewString()}
}

// FinalToken returns the reserved sentinel for terminal transitions.
func FinalToken() Token {
	return Token{value: finalTokenValue}
}

// TokenFromString reconstructs a token from its persisted representation.
func TokenFromString(s string) (Token, error) {
	if s == "" {
		return Token{}, errs.NewValueIsRequiredError("token")
	}
	return Token{value: s}, nil
}

// String returns the opaque token value.
func (t Token) String() string {
	return t.value
}

// IsFinal reports whether the token is the reserved FINAL sentinel.
func (t Token) IsFinal() bool {
	return t.value == finalTokenValue
}

// Matches compares two tokens for equality.
func (t Token) Matches(other Token) bool {
	return t.value == other.value
}

// Validate ensures the Token was properly constructed.
func (t Token) Validate() error {
	if t.value == "" {
		return ErrTokenIsNotConstructed
	}
	return nil
}
