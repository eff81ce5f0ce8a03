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

// Package logging builds the slog logger used by the literal command.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType selects the output format.
type HandlerType string

const (
	// JSONHandler writes one JSON object per record.
	JSONHandler HandlerType = "json"
	// TextHandler writes key=value records.
	TextHandler HandlerType = "text"
	// ConsoleHandler writes colored records for terminals.
	ConsoleHandler HandlerType = "console"
)

// Static errors for logger construction.
var (
	ErrInvalidHandler = errors.New("invalid handler type")
	ErrInvalidLevel   = errors.New("invalid log level")
	ErrNilOutput      = errors.New("output writer is nil")
)

type options struct {
	handlerType HandlerType
	level       slog.Level
	output      io.Writer
	addSource   bool
	environ     []string
}

// Option configures [New].
type Option func(*options)

// WithHandlerType sets the output format.
func WithHandlerType(t HandlerType) Option {
	return func(o *options) { o.handlerType = t }
}

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithOutput sets the destination. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}

// WithSource adds the caller location to records.
func WithSource(enabled bool) Option {
	return func(o *options) { o.addSource = enabled }
}

// WithEnviron sets the environment used to detect the color support of
// the console handler output (NO_COLOR, CLICOLOR_FORCE, TERM).
func WithEnviron(environ []string) Option {
	return func(o *options) { o.environ = environ }
}

// New creates a logger. The default is a text handler at warn level
// writing to os.Stderr.
func New(opts ...Option) (*slog.Logger, error) {
	o := &options{
		handlerType: TextHandler,
		level:       slog.LevelWarn,
		output:      os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.output == nil {
		return nil, ErrNilOutput
	}

	hopts := &slog.HandlerOptions{Level: o.level, AddSource: o.addSource}

	var h slog.Handler
	switch o.handlerType {
	case JSONHandler:
		h = slog.NewJSONHandler(o.output, hopts)
	case TextHandler:
		h = slog.NewTextHandler(o.output, hopts)
	case ConsoleHandler:
		h = newConsoleHandler(o.output, o.environ, hopts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidHandler, o.handlerType)
	}
	return slog.New(h), nil
}

// ParseLevel resolves "debug", "info", "warn" or "error", ignoring case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}
