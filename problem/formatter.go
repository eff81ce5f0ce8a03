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

package problem

// Formatter turns an error into the parts of an error response.
type Formatter interface {
	// Format renders err. Instance identifies the occurrence, for example
	// a request path or the literal that failed.
	Format(instance string, err error) Response
}

// Response is a formatted error.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the media type of Body once encoded.
	ContentType string

	// Body is the document to encode (JSON, YAML or TOML).
	Body any
}

// ErrorType lets an error choose its HTTP status code.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorCode lets an error expose a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// ErrorDetails lets an error expose structured context.
type ErrorDetails interface {
	error
	Details() any
}

// NewRFC9457 creates an RFC 9457 formatter. baseURL is joined with an
// error's code to build the problem type URI.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// NewSimple creates a [Simple] formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// New returns the formatter registered under name: "rfc9457" (or
// "problem") and "simple". It returns nil for unknown names.
func New(name, baseURL string) Formatter {
	switch name {
	case "rfc9457", "problem", "":
		return NewRFC9457(baseURL)
	case "simple":
		return NewSimple()
	default:
		return nil
	}
}
