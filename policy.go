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
	"strings"
)

// Policy selects how literal text is interpreted. The set of policies is
// closed; use [ForETags], [ForKeys] and [ForExpressions] to choose one.
type Policy uint8

const (
	// PolicyDefault requires full markup (prefixes, quotes, suffixes) and
	// accepts any literal re-encoded as a binary literal.
	PolicyDefault Policy = iota

	// PolicySpatial parses geography and geometry kinds with the spatial
	// parser and otherwise behaves as PolicyDefault.
	PolicySpatial

	// PolicySegment is used for keys written as URI path segments. It
	// expects no prefixes or quotes, tolerates suffixes, and unescapes a
	// leading "$$".
	PolicySegment
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case PolicySpatial:
		return "spatial"
	case PolicySegment:
		return "segment"
	default:
		return "unknown"
	}
}

// parseDefault implements PolicyDefault for a non-spatial kind.
//
// Any literal may have been re-encoded as binary by its producer, so the
// binary form is tried before the kind's own grammar. A decoded binary
// payload is reinterpreted as UTF-8 text exactly once; the reinterpreted
// text is never checked for binary again.
func (c *Codec) parseDefault(k Kind, text string) (any, error) {
	bin := mustLookup(Binary)
	raw, err := bin.parse(text)
	if err == nil {
		b, _ := raw.([]byte)
		if k == Binary {
			return b, nil
		}
		decoded := strings.ToValidUTF8(string(b), "\uFFFD")
		c.opts.Logger.Debug("reinterpreting binary literal",
			"type", k.String(), "text", text, "decoded", decoded)
		if c.opts.Events.BinaryFallback != nil {
			c.opts.Events.BinaryFallback(k)
		}
		return mustLookup(k).parse(decoded)
	}

	if k == Binary {
		return nil, err
	}
	return mustLookup(k).parse(text)
}

// parseSegment implements PolicySegment.
func (c *Codec) parseSegment(k Kind, text string) (any, error) {
	text, err := unescapeLeadingDollar(text)
	if err != nil {
		return nil, err
	}

	conv := mustLookup(k)
	if k == Binary {
		return conv.convert(text)
	}
	v, err := conv.convert(text)
	if err == nil || conv.format.Suffix == "" {
		return v, err
	}
	// A trailing suffix letter may belong to the value itself ("INF" for
	// Single), so the suffix is removed only when the bare text fails.
	core, found := removeSuffix(conv.format.Suffix, text)
	if !found {
		return nil, err
	}
	return conv.convert(core)
}

// unescapeLeadingDollar removes the first '$' of a segment starting with
// "$$". A segment with a single leading '$' names a system resource and
// must not be parsed as a key.
func unescapeLeadingDollar(text string) (string, error) {
	if len(text) < 2 || text[0] != '$' {
		return text, nil
	}
	if text[1] == '$' {
		return text[1:], nil
	}
	return "", fmt.Errorf("%w: %w", ErrFormatMismatch, ErrReservedSegment)
}

// escapeLeadingDollar is the inverse of unescapeLeadingDollar.
func escapeLeadingDollar(text string) string {
	if strings.HasPrefix(text, "$") {
		return "$" + text
	}
	return text
}
