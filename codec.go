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
	"fmt"
	"sync"
)

// Codec parses literal text into typed values under a [Policy].
//
// Use [New] or [MustNew] to create a configured Codec, or use the
// package-level functions ([ParseForETag], [ParseForKey],
// [ParseForExpression]) for the default configuration.
//
// Codec holds no mutable state and is safe for concurrent use by multiple
// goroutines.
type Codec struct {
	opts *Options
}

// New creates a [Codec] with the given options.
// Returns an error if the configuration is invalid.
func New(opts ...Option) (*Codec, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &Codec{opts: o}, nil
}

// MustNew creates a [Codec] with the given options.
// Panics if the configuration is invalid.
func MustNew(opts ...Option) *Codec {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("literal.MustNew: %v", err))
	}
	return c
}

var defaultCodec = sync.OnceValue(func() *Codec { return MustNew() })

// ForETags returns the policy for concurrency tokens.
func ForETags() Policy { return PolicyDefault }

// ForKeys returns the policy for entity keys. Keys written as URI path
// segments use [PolicySegment]; parenthesized keys use [PolicyDefault].
func ForKeys(keysAsSegments bool) Policy {
	if keysAsSegments {
		return PolicySegment
	}
	return PolicyDefault
}

// ForExpressions returns the policy for filter and order-by constants and
// operation parameters, the only places where spatial literals occur.
func ForExpressions() Policy { return PolicySpatial }

// ParseForETag parses an ETag literal with the default codec.
func ParseForETag(t TypeReference, text string) (any, error) {
	return defaultCodec().ParseForETag(t, text)
}

// ParseForKey parses a key literal with the default codec.
func ParseForKey(keysAsSegments bool, t TypeReference, text string) (any, error) {
	return defaultCodec().ParseForKey(keysAsSegments, t, text)
}

// ParseForExpression parses an expression constant with the default codec.
func ParseForExpression(t TypeReference, text string) (any, error) {
	return defaultCodec().ParseForExpression(t, text)
}

// ParseForETag parses an ETag literal.
func (c *Codec) ParseForETag(t TypeReference, text string) (any, error) {
	return c.Parse(ForETags(), t, text)
}

// ParseForKey parses a key literal.
func (c *Codec) ParseForKey(keysAsSegments bool, t TypeReference, text string) (any, error) {
	return c.Parse(ForKeys(keysAsSegments), t, text)
}

// ParseForExpression parses a filter or order-by constant.
func (c *Codec) ParseForExpression(t TypeReference, text string) (any, error) {
	return c.Parse(ForExpressions(), t, text)
}

// Parse converts text to a value of the type referenced by t under policy
// p. The dynamic type of a returned value is always t's Kind.GoType().
// Failures are returned as *ParseError.
func (c *Codec) Parse(p Policy, t TypeReference, text string) (any, error) {
	k := underlying(t)

	if p == PolicySpatial && k.IsSpatial() {
		v, err := c.opts.Spatial.ParseSpatial(k, text)
		if err != nil {
			return nil, c.fail(p, k, text, ReasonSpatial, err)
		}
		c.parsed(k, p)
		return v, nil
	}

	if !Supported(k) {
		return nil, c.fail(p, k, text, ReasonUnsupportedType,
			fmt.Errorf("%w: %s", ErrUnsupportedType, k))
	}

	var (
		v   any
		err error
	)
	switch p {
	case PolicyDefault, PolicySpatial:
		v, err = c.parseDefault(k, text)
	case PolicySegment:
		v, err = c.parseSegment(k, text)
	default:
		panic(fmt.Sprintf("literal: unknown policy %d", p))
	}
	if err != nil {
		return nil, c.fail(p, k, text, reasonOf(err), err)
	}

	c.parsed(k, p)
	return v, nil
}

// ParseAs parses text with c and asserts the result to T.
//
// Example:
//
//	id, err := literal.ParseAs[int64](codec, literal.ForKeys(false), literal.Int64, "42L")
func ParseAs[T any](c *Codec, p Policy, t TypeReference, text string) (T, error) {
	var zero T
	v, err := c.Parse(p, t, text)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s parses to %T, not %T", ErrValueType, underlying(t), v, zero)
	}
	return out, nil
}

func (c *Codec) parsed(k Kind, p Policy) {
	if c.opts.Events.Parsed != nil {
		c.opts.Events.Parsed(k, p)
	}
}

func (c *Codec) fail(p Policy, k Kind, text string, reason Reason, err error) *ParseError {
	perr := &ParseError{Kind: k, Policy: p, Text: text, Reason: reason, Err: err}
	c.opts.Logger.Debug("literal parse failed",
		"type", k.String(), "policy", p.String(), "reason", reason.String(), "error", err)
	if c.opts.Events.Failed != nil {
		c.opts.Events.Failed(perr)
	}
	return perr
}
