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
	"io"
	"log/slog"

	"rivaas.dev/literal/spatial"
)

// SpatialParser parses geography and geometry literals for [PolicySpatial].
// Its errors are reported unchanged inside a [ParseError] with
// [ReasonSpatial].
type SpatialParser interface {
	ParseSpatial(kind Kind, text string) (spatial.Value, error)
}

// SpatialParserFunc adapts a function to [SpatialParser].
type SpatialParserFunc func(kind Kind, text string) (spatial.Value, error)

// ParseSpatial implements SpatialParser.
func (f SpatialParserFunc) ParseSpatial(kind Kind, text string) (spatial.Value, error) {
	return f(kind, text)
}

// wktParser is the default SpatialParser backed by the spatial package.
type wktParser struct{}

func (wktParser) ParseSpatial(kind Kind, text string) (spatial.Value, error) {
	return spatial.Parse(kind.spatialKind(), text)
}

// Events provides hooks for observability without coupling.
type Events struct {
	// Parsed is called after a literal was parsed successfully.
	Parsed func(kind Kind, policy Policy)

	// BinaryFallback is called when a non-binary literal arrived re-encoded
	// as binary and was reinterpreted as UTF-8 text.
	BinaryFallback func(kind Kind)

	// Failed is called for every parse failure.
	Failed func(err *ParseError)
}

// Options configures a [Codec].
type Options struct {
	Logger  *slog.Logger  // Receives debug records for fallbacks and failures
	Spatial SpatialParser // Parser for spatial kinds (default: well-known text)
	Events  Events        // Observability hooks
}

// Option configures a [Codec].
type Option func(*Options)

// ErrNilSpatialParser is returned by [New] when WithSpatialParser(nil) is
// given.
var ErrNilSpatialParser = errors.New("spatial parser is nil")

func defaultOptions() *Options {
	return &Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Spatial: wktParser{},
	}
}

func (o *Options) validate() error {
	if o.Spatial == nil {
		return ErrNilSpatialParser
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return nil
}

// WithLogger sets the logger used for debug records.
// A nil logger discards records.
//
// Example:
//
//	codec := literal.MustNew(literal.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSpatialParser replaces the well-known-text parser used for spatial
// kinds by [PolicySpatial].
func WithSpatialParser(p SpatialParser) Option {
	return func(o *Options) {
		o.Spatial = p
	}
}

// WithEvents sets observability hooks.
//
// Example:
//
//	literal.WithEvents(literal.Events{
//		Failed: func(err *literal.ParseError) {
//			logger.Warn("literal rejected", "kind", err.Kind, "reason", err.Reason)
//		},
//	})
func WithEvents(events Events) Option {
	return func(o *Options) {
		o.Events = events
	}
}
