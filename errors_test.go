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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError_Error(t *testing.T) {
	t.Parallel()

	err := &ParseError{
		Kind:   Int64,
		Policy: PolicyDefault,
		Text:   "12",
		Reason: ReasonFormatMismatch,
		Err:    fmt.Errorf("%w: missing \"L\" suffix", ErrFormatMismatch),
	}

	assert.Equal(t,
		`literal "12" is not a valid Edm.Int64 (default policy): literal formatting not recognized: missing "L" suffix`,
		err.Error())
}

func TestParseError_Is(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason Reason
		match  error
	}{
		{ReasonFormatMismatch, ErrFormatMismatch},
		{ReasonPayloadMalformed, ErrPayloadMalformed},
		{ReasonUnsupportedType, ErrUnsupportedType},
		{ReasonSpatial, ErrSpatial},
	}

	all := []error{ErrFormatMismatch, ErrPayloadMalformed, ErrUnsupportedType, ErrSpatial}

	for _, tt := range tests {
		t.Run(tt.reason.String(), func(t *testing.T) {
			t.Parallel()

			err := &ParseError{Reason: tt.reason, Err: errors.New("cause")}
			for _, sentinel := range all {
				assert.Equal(t, sentinel == tt.match, errors.Is(err, sentinel), sentinel)
			}
		})
	}
}

func TestParseError_As(t *testing.T) {
	t.Parallel()

	var err error = &ParseError{Kind: Guid, Reason: ReasonPayloadMalformed}
	wrapped := fmt.Errorf("key: %w", err)

	var perr *ParseError
	require.ErrorAs(t, wrapped, &perr)
	assert.Equal(t, Guid, perr.Kind)
}

func TestParseError_Problem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason Reason
		status int
		code   string
	}{
		{ReasonFormatMismatch, http.StatusBadRequest, "literal_format_mismatch"},
		{ReasonPayloadMalformed, http.StatusBadRequest, "literal_payload_malformed"},
		{ReasonSpatial, http.StatusBadRequest, "literal_spatial"},
		{ReasonUnsupportedType, http.StatusInternalServerError, "literal_unsupported_type"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			err := &ParseError{Kind: Int32, Policy: PolicySegment, Text: "x", Reason: tt.reason}
			assert.Equal(t, tt.status, err.HTTPStatus())
			assert.Equal(t, tt.code, err.Code())
			assert.Equal(t, map[string]any{
				"type":   "Edm.Int32",
				"policy": "segment",
				"text":   "x",
				"reason": tt.reason.String(),
			}, err.Details())
		})
	}
}

func TestReasonOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ReasonPayloadMalformed, reasonOf(fmt.Errorf("x: %w", ErrPayloadMalformed)))
	assert.Equal(t, ReasonUnsupportedType, reasonOf(ErrUnsupportedType))
	assert.Equal(t, ReasonFormatMismatch, reasonOf(ErrFormatMismatch))
	assert.Equal(t, ReasonFormatMismatch, reasonOf(fmt.Errorf("%w: %w", ErrFormatMismatch, ErrReservedSegment)))
	assert.Equal(t, "unknown", Reason(0).String())
}
