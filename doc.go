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

// Package literal parses the typed literals that appear in resource URIs:
// entity keys, concurrency tokens (ETags), skip tokens, and constants in
// filter and order-by expressions.
//
// Each primitive [Kind] has a fixed literal grammar:
//
//	Boolean, Byte, SByte, Int16, Int32   true  255  -8  12  42
//	Int64, Single, Decimal               42L   1.5f  3.14M
//	Double                               1.5   1.5D
//	Guid                                 guid'00000000-0000-0000-0000-000000000000'
//	DateTime, DateTimeOffset             datetime'2024-01-15T10:30:00Z'
//	Time                                 time'P1DT2H'
//	Binary                               binary'48656C6C6F'  X'48656C6C6F'
//	String                               'O''Neil'
//
// # Quick Start
//
// Pick the entry point for the place the literal came from:
//
//	// ETag values
//	v, err := literal.ParseForETag(literal.Int64, "42L")
//
//	// Keys, in parentheses or as path segments
//	v, err := literal.ParseForKey(false, literal.Guid, "guid'...'")
//	v, err := literal.ParseForKey(true, literal.String, "$$price")
//
//	// Filter/order-by constants, including spatial literals
//	v, err := literal.ParseForExpression(literal.GeographyPoint,
//	    "geography'SRID=4326;POINT(-122.3 47.6)'")
//
// A nullable type is requested with [Nullable]; parsing is the same as for
// the underlying kind. Metadata models may implement [TypeReference]
// directly.
//
// # Policies
//
// [PolicyDefault] requires full markup and also accepts any literal that
// was re-encoded by its producer as a binary literal (see
// [FormatBinaryFallback]). [PolicySpatial] adds geography and geometry
// kinds. [PolicySegment] reads keys written as URI path segments, which
// carry no prefixes or quotes.
//
// # Errors
//
// Every failure is a [*ParseError] whose Reason tells a formatting problem
// ([ErrFormatMismatch]) from a bad value ([ErrPayloadMalformed]), a caller
// defect ([ErrUnsupportedType]) or a rejected spatial literal
// ([ErrSpatial]):
//
//	_, err := literal.ParseForETag(literal.Int64, "123")
//	errors.Is(err, literal.ErrFormatMismatch) // true: suffix L is required
//
// # Configuration
//
// Use [New] with functional options for logging, observability hooks or a
// custom spatial parser:
//
//	codec := literal.MustNew(
//	    literal.WithLogger(logger),
//	    literal.WithEvents(literal.Events{Failed: recordFailure}),
//	)
//
// The converter table is built once and never modified; all functions in
// this package are safe for concurrent use.
package literal
