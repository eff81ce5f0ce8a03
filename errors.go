// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package literal

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for literal parsing. Every error returned by this package
// matches exactly one of the first four via [errors.Is].
var (
	ErrFormatMismatch   = errors.New("literal formatting not recognized")
	ErrPayloadMalformed = errors.New("malformed literal payload")
	ErrUnsupportedType  = errors.New("unsupported literal type")
	ErrSpatial          = errors.New("invalid spatial literal")

	ErrReservedSegment = errors.New("single leading '$' is reserved for system segments")
	ErrValueType       = errors.New("value does not match literal type")
)

// Reason classifies a parse failure.
type Reason uint8

const (
	// ReasonFormatMismatch means the expected prefix, suffix or quotes were
	// absent. The caller may try another type or report a bad request.
	ReasonFormatMismatch Reason = iota + 1

	// ReasonPayloadMalformed means the markup was recognized but the inner
	// text is not a valid value of the type.
	ReasonPayloadMalformed

	// ReasonUnsupportedType means no converter exists for the requested
	// kind. This is a wiring defect in the caller.
	ReasonUnsupportedType

	// ReasonSpatial means the spatial parser rejected the literal.
	ReasonSpatial
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonFormatMismatch:
		return "format_mismatch"
	case ReasonPayloadMalformed:
		return "payload_malformed"
	case ReasonUnsupportedType:
		return "unsupported_type"
	case ReasonSpatial:
		return "spatial"
	default:
		return "unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonFormatMismatch:
		return ErrFormatMismatch
	case ReasonPayloadMalformed:
		return ErrPayloadMalformed
	case ReasonUnsupportedType:
		return ErrUnsupportedType
	case ReasonSpatial:
		return ErrSpatial
	default:
		return nil
	}
}

// reasonOf classifies an internal error by the sentinel it wraps.
func reasonOf(err error) Reason {
	switch {
	case errors.Is(err, ErrUnsupportedType):
		return ReasonUnsupportedType
	case errors.Is(err, ErrPayloadMalformed):
		return ReasonPayloadMalformed
	default:
		return ReasonFormatMismatch
	}
}

// ParseError reports a literal that could not be parsed, with the context
// needed to map it to a protocol error.
//
// Use [errors.As] to check for ParseError:
//
//	var perr *literal.ParseError
//	if errors.As(err, &perr) && perr.Reason == literal.ReasonFormatMismatch {
//	    // try another type
//	}
type ParseError struct {
	Kind   Kind   // Requested kind, nullability stripped
	Policy Policy // Policy that rejected the literal
	Text   string // Literal text as supplied
	Reason Reason // Failure class
	Err    error  // Underlying error
}

// Error returns a formatted error message.
func (e *ParseError) Error() string {
	return fmt.Sprintf("literal %q is not a valid %s (%s policy): %v", e.Text, e.Kind, e.Policy, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As compatibility.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's reason. Spatial
// parser errors are propagated unchanged, so they only match ErrSpatial
// through this method.
func (e *ParseError) Is(target error) bool {
	s := e.Reason.sentinel()
	return s != nil && target == s
}

// HTTPStatus implements rivaas.dev/literal/problem.ErrorType.
// Unsupported types are server defects, everything else is a bad request.
func (e *ParseError) HTTPStatus() int {
	if e.Reason == ReasonUnsupportedType {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// Code implements rivaas.dev/literal/problem.ErrorCode.
func (e *ParseError) Code() string {
	return "literal_" + e.Reason.String()
}

// Details implements rivaas.dev/literal/problem.ErrorDetails.
func (e *ParseError) Details() any {
	return map[string]any{
		"type":   e.Kind.String(),
		"policy": e.Policy.String(),
		"text":   e.Text,
		"reason": e.Reason.String(),
	}
}
