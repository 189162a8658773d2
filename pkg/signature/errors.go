package signature

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

var (
	// ErrUnknownInvariantType is returned when an [InvariantType] is neither
	// [StringInvariant] nor [IntInvariant].
	ErrUnknownInvariantType = errors.New("unknown invariant type")

	// ErrInvalidRoot is returned by [Create] when the root index is outside
	// [0, vertexCount).
	ErrInvalidRoot = errors.New("root vertex out of range")

	// ErrInvalidHeight is returned by [Create] for heights below -1.
	ErrInvalidHeight = errors.New("height must be -1 (unbounded) or >= 0")

	// ErrVertexOutOfRange is returned when the host graph reports a neighbour
	// outside [0, vertexCount).
	ErrVertexOutOfRange = errors.New("neighbour vertex out of range")

	// ErrAsymmetricAdapter is returned when the host graph reports v as a
	// neighbour of u but not u as a neighbour of v, or labels the two
	// directions of an edge differently.
	ErrAsymmetricAdapter = errors.New("host graph connectivity is not symmetric")

	// ErrSelfLoop is returned when a vertex lists itself as a neighbour.
	ErrSelfLoop = errors.New("host graph contains a self loop")

	// ErrReservedCharacter is returned when a vertex symbol or edge label
	// contains one of the structural characters ( ) [ ] or the separator ,.
	ErrReservedCharacter = errors.New("label contains a reserved character")

	// ErrMalformedSignature is wrapped by every [ParseError].
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrSearchBudgetExceeded is returned by [VertexSignature.CanonicalString]
	// when the canonization search needs more steps than allowed.
	ErrSearchBudgetExceeded = errors.New("canonization search budget exceeded")
)

// ParseError describes why a signature string could not be parsed.
// Offset is the byte offset of the offending token.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Expected string // expected token(s), empty when unknown
	Message  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Expected != "" && !strings.Contains(e.Message, "expected") {
		return fmt.Sprintf("signature: offset %d: %s (expected %s)", e.Offset, e.Message, e.Expected)
	}
	return fmt.Sprintf("signature: offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns ErrMalformedSignature.
func (e *ParseError) Unwrap() error { return ErrMalformedSignature }

// newParseError converts a participle error into a *ParseError.
func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error()}

	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		pe.Offset = pos.Offset
		pe.Line = pos.Line
		pe.Column = pos.Column
		pe.Message = perr.Message()
	}
	if _, after, ok := strings.Cut(pe.Message, "(expected "); ok {
		pe.Expected = strings.TrimSuffix(after, ")")
	}
	return pe
}
