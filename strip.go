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

// Literal markers.
const (
	PrefixBinary         = "binary"
	PrefixBinaryShort    = "X"
	PrefixGuid           = "guid"
	PrefixDateTime       = "datetime"
	PrefixDateTimeOffset = "datetimeoffset"
	PrefixTime           = "time"

	SuffixInt64   = "L"
	SuffixSingle  = "f"
	SuffixDouble  = "D"
	SuffixDecimal = "M"
)

// xmlWhitespace is trimmed around suffixed literals.
const xmlWhitespace = " \t\n\r"

// Markup describes the markup surrounding the core text of a literal.
// At most one of Prefix and Suffix is set.
type Markup struct {
	Prefix         string // Required leading type marker, followed by quotes
	Suffix         string // Trailing type marker
	SuffixRequired bool   // Whether Suffix must be present
	Quoted         bool   // Whether the core text is enclosed in single quotes
}

// quoted reports whether literals of this format are enclosed in quotes.
// A prefix always implies quotes.
func (f Markup) quoted() bool {
	return f.Prefix != "" || f.Quoted
}

// strip removes the markup described by f from text and returns the
// canonical core. The order prefix, quotes, suffix is significant: a
// trailing quote must be consumed before a suffix is looked for.
func (f Markup) strip(text string) (string, error) {
	if f.Prefix != "" {
		var ok bool
		if text, ok = removePrefix(f.Prefix, text); !ok {
			return "", fmt.Errorf("%w: missing %q prefix", ErrFormatMismatch, f.Prefix)
		}
	}

	if f.quoted() {
		var err error
		if text, err = removeQuotes(text); err != nil {
			return "", err
		}
	}

	if f.Suffix != "" {
		var found bool
		text, found = removeSuffix(f.Suffix, text)
		if !found && f.SuffixRequired {
			return "", fmt.Errorf("%w: missing %q suffix", ErrFormatMismatch, f.Suffix)
		}
	}

	return text, nil
}

// removePrefix removes prefix from text, ignoring ASCII case.
func removePrefix(prefix, text string) (string, bool) {
	if len(text) < len(prefix) || !strings.EqualFold(text[:len(prefix)], prefix) {
		return text, false
	}
	return text[len(prefix):], true
}

// removeQuotes removes the enclosing single quotes and collapses each
// doubled inner quote into one. A lone inner quote is an error.
func removeQuotes(text string) (string, error) {
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return "", fmt.Errorf("%w: literal is not enclosed in single quotes", ErrFormatMismatch)
	}

	inner := text[1 : len(text)-1]
	if strings.IndexByte(inner, '\'') < 0 {
		return inner, nil
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\'' {
			if i+1 >= len(inner) || inner[i+1] != '\'' {
				return "", fmt.Errorf("%w: unescaped quote at offset %d", ErrFormatMismatch, i+1)
			}
			i++
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

// removeSuffix trims XML whitespace and then removes suffix, ignoring ASCII
// case. The trimmed text is returned even if the suffix is absent. A text
// consisting of only the suffix does not match.
func removeSuffix(suffix, text string) (string, bool) {
	text = strings.Trim(text, xmlWhitespace)
	if len(text) <= len(suffix) || !strings.EqualFold(text[len(text)-len(suffix):], suffix) {
		return text, false
	}
	return text[:len(text)-len(suffix)], true
}

// quote encloses text in single quotes, doubling any inner quote.
func quote(text string) string {
	return "'" + strings.ReplaceAll(text, "'", "''") + "'"
}
