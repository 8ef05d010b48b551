package subtitle

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ErrorCode classifies a ParseError. String-based so it reads sanely in
// logs and diagnostics without a lookup table.
type ErrorCode string

const (
	CodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	CodeInvalidTimestamp ErrorCode = "INVALID_TIMESTAMP"
	CodeMalformedEvent   ErrorCode = "MALFORMED_EVENT"
	CodeInvalidSection   ErrorCode = "INVALID_SECTION"
)

// ParseError describes one recoverable problem found while parsing, with
// enough position information for a caller to point a user at the source
// line. Line and Column are 1-based; Column is 0 when the format has no
// natural column concept (block-oriented formats like SRT).
type ParseError struct {
	Line    int
	Column  int
	Code    ErrorCode
	Message string
	Raw     string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// OnError selects what a parser does when it hits a recoverable problem.
type OnError int

const (
	// OnErrorCollect drops the offending event/line and keeps going,
	// accumulating every ParseError into ParseResult.Errors. Zero value,
	// matching the Result-returning Parse's documented default.
	OnErrorCollect OnError = iota
	// OnErrorThrow aborts the parse and returns the first ParseError
	// wrapped as the function's error return. ParseDefault always passes
	// this explicitly, since the legacy single-return shape has no way
	// to surface collected errors.
	OnErrorThrow
	// OnErrorSkip drops the offending event/line silently, without
	// recording a ParseError.
	OnErrorSkip
)

// ParseOptions governs every format package's Parse function.
type ParseOptions struct {
	// OnError selects throw-vs-collect behavior. Zero value is
	// OnErrorCollect, matching Parse; ParseDefault passes OnErrorThrow
	// explicitly.
	OnError OnError
	// Strict makes a parser report input it would otherwise pass over.
	// Only the LRC parser reads it (unrecognized lines become
	// INVALID_FORMAT errors); the other parsers, including the ASS
	// parser's PlayResX/PlayResY fallback, behave the same either way.
	// Zero value is lenient.
	Strict bool
	// PreserveOrder is accepted but no parser in this module reads it;
	// the ASS parser records each comment's position in
	// Comment.BeforeEventIndex either way.
	PreserveOrder bool
	// Logger, if set, receives diagnostic events during parsing. Never
	// required: a nil Logger means no logging, not a panic.
	Logger *zerolog.Logger
}

// ParseResult carries non-fatal diagnostics out of a Parse call. The
// parsers in this module return a non-nil *ParseResult, also alongside a
// non-nil error under OnErrorThrow.
type ParseResult struct {
	Errors []ParseError
}

func (r *ParseResult) addError(e ParseError) {
	r.Errors = append(r.Errors, e)
}

// AddError records a recoverable diagnostic on the result. Exported so
// format packages can share it.
func (r *ParseResult) AddError(e ParseError) {
	r.addError(e)
}

// Report applies opts.OnError to one recoverable problem found while
// parsing. Throw mode returns e as an error, signaling the caller to abort
// immediately; collect mode appends e and returns nil; skip mode drops e
// and returns nil. Every format package funnels its per-event/per-line
// failures through this single chokepoint so the three modes stay
// consistent across formats.
func (r *ParseResult) Report(opts ParseOptions, e ParseError) error {
	switch opts.OnError {
	case OnErrorThrow:
		return &e
	case OnErrorSkip:
		return nil
	case OnErrorCollect:
		r.addError(e)
		return nil
	default:
		r.addError(e)
		return nil
	}
}

// SerializeOptions governs every format package's Serialize function.
type SerializeOptions struct {
	// Strict is accepted but no serializer in this module reads it, so
	// none of them rejects a document.
	Strict bool
	// Logger, if set, receives diagnostic events during serialization.
	Logger *zerolog.Logger
}
