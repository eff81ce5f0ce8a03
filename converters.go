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
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// converter pairs the markup of a kind with the conversion of its
// canonical core text.
type converter struct {
	kind    Kind
	format  Markup
	strip   func(text string) (string, error) // overrides format.strip when set
	convert func(core string) (any, error)
}

// removeFormatting strips the kind's markup from text.
func (c *converter) removeFormatting(text string) (string, error) {
	if c.strip != nil {
		return c.strip(text)
	}
	return c.format.strip(text)
}

// parse strips the markup and converts the remaining core.
func (c *converter) parse(text string) (any, error) {
	core, err := c.removeFormatting(text)
	if err != nil {
		return nil, err
	}
	return c.convert(core)
}

// converterTable is indexed by Kind. Spatial kinds have no entry.
type converterTable [kindCount]*converter

// converters is built on first use and never modified afterwards, so it is
// shared by all goroutines without locking.
var converters = sync.OnceValue(func() *converterTable {
	var t converterTable
	add := func(k Kind, f Markup, convert func(string) (any, error)) *converter {
		if t[k] != nil {
			panic(fmt.Sprintf("literal: duplicate converter for %s", k))
		}
		t[k] = &converter{kind: k, format: f, convert: convert}
		return t[k]
	}

	// Quoted types with their own rules.
	add(Binary, Markup{Prefix: PrefixBinary}, convertBinary).strip = stripBinary
	add(String, Markup{Quoted: true}, convertString)
	add(Decimal, Markup{Suffix: SuffixDecimal, SuffixRequired: true}, convertDecimal)

	// Types without single quotes or type markers.
	add(Boolean, Markup{}, convertBoolean)
	add(Byte, Markup{}, convertByte)
	add(SByte, Markup{}, convertSByte)
	add(Int16, Markup{}, convertInt16)
	add(Int32, Markup{}, convertInt32)

	// Types with prefixes and single quotes.
	add(Guid, Markup{Prefix: PrefixGuid}, convertGuid)
	add(DateTime, Markup{Prefix: PrefixDateTime}, convertDateTime)
	add(DateTimeOffset, Markup{Prefix: PrefixDateTimeOffset}, convertDateTimeOffset)
	add(Time, Markup{Prefix: PrefixTime}, convertDuration)

	// Types with suffixes.
	add(Int64, Markup{Suffix: SuffixInt64, SuffixRequired: true}, convertInt64)
	add(Single, Markup{Suffix: SuffixSingle, SuffixRequired: true}, convertSingle)
	add(Double, Markup{Suffix: SuffixDouble}, convertDouble)

	return &t
})

// lookup returns the converter for k.
func lookup(k Kind) (*converter, bool) {
	if !k.Valid() {
		return nil, false
	}
	c := converters()[k]
	return c, c != nil
}

// mustLookup returns the converter for k and panics if there is none.
// Callers check support first; reaching the panic is a programming error.
func mustLookup(k Kind) *converter {
	c, ok := lookup(k)
	if !ok {
		panic(fmt.Sprintf("literal: no converter for %s", k))
	}
	return c
}

// Supported reports whether literals of kind k can be parsed by the
// converter table. Spatial kinds are parsed by [PolicySpatial] only.
func Supported(k Kind) bool {
	_, ok := lookup(k)
	return ok
}

// MarkupOf returns the markup descriptor of k.
func MarkupOf(k Kind) (Markup, bool) {
	c, ok := lookup(k)
	if !ok {
		return Markup{}, false
	}
	return c.format, true
}

// stripBinary accepts either the long or the short binary prefix, followed
// by quotes.
func stripBinary(text string) (string, error) {
	rest, ok := removePrefix(PrefixBinary, text)
	if !ok {
		if rest, ok = removePrefix(PrefixBinaryShort, text); !ok {
			return "", fmt.Errorf("%w: missing %q or %q prefix", ErrFormatMismatch, PrefixBinary, PrefixBinaryShort)
		}
	}
	return removeQuotes(rest)
}

func convertBinary(core string) (any, error) {
	b, err := decodeHex(core)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func convertString(core string) (any, error) {
	return core, nil
}

func convertBoolean(core string) (any, error) {
	switch strings.Trim(core, xmlWhitespace) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return nil, fmt.Errorf("%w: invalid boolean %q", ErrPayloadMalformed, core)
	}
}

// parseInteger parses a decimal integer with an optional sign and
// surrounding XML whitespace, bounded by [lo, hi].
func parseInteger(core string, lo, hi int64) (int64, error) {
	s := strings.Trim(core, xmlWhitespace)
	if s == "" {
		return 0, fmt.Errorf("%w: empty integer", ErrPayloadMalformed)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: integer %q out of range", ErrPayloadMalformed, core)
		}
		return 0, fmt.Errorf("%w: invalid integer %q", ErrPayloadMalformed, core)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: integer %q out of range [%d, %d]", ErrPayloadMalformed, core, lo, hi)
	}
	return n, nil
}

func convertByte(core string) (any, error) {
	n, err := parseInteger(core, 0, math.MaxUint8)
	if err != nil {
		return nil, err
	}
	return uint8(n), nil
}

func convertSByte(core string) (any, error) {
	n, err := parseInteger(core, math.MinInt8, math.MaxInt8)
	if err != nil {
		return nil, err
	}
	return int8(n), nil
}

func convertInt16(core string) (any, error) {
	n, err := parseInteger(core, math.MinInt16, math.MaxInt16)
	if err != nil {
		return nil, err
	}
	return int16(n), nil
}

func convertInt32(core string) (any, error) {
	n, err := parseInteger(core, math.MinInt32, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	return int32(n), nil
}

func convertInt64(core string) (any, error) {
	n, err := parseInteger(core, math.MinInt64, math.MaxInt64)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// parseFloat parses an XML Schema float or double: a decimal number with
// optional exponent, or one of INF, -INF and NaN.
func parseFloat(core string, bitSize int) (float64, error) {
	s := strings.Trim(core, xmlWhitespace)
	switch s {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}

	if !scanNumber(s, true) {
		return 0, fmt.Errorf("%w: invalid floating point number %q", ErrPayloadMalformed, core)
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: floating point number %q out of range", ErrPayloadMalformed, core)
	}
	return f, nil
}

func convertSingle(core string) (any, error) {
	f, err := parseFloat(core, 32)
	if err != nil {
		return nil, err
	}
	return float32(f), nil
}

func convertDouble(core string) (any, error) {
	f, err := parseFloat(core, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func convertGuid(core string) (any, error) {
	u, err := uuid.Parse(strings.TrimSpace(core))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadMalformed, err)
	}
	return u, nil
}

// scanNumber reports whether s is a plain decimal number: an optional
// sign, digits with at most one decimal point, and, if exponent is set, an
// optional exponent. At least one mantissa digit is required.
func scanNumber(s string, exponent bool) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if exponent && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
