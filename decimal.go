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

	"github.com/cockroachdb/apd/v3"
)

// maxDecimal is the largest magnitude of a 96-bit scaled decimal.
var maxDecimal = mustDecimal("79228162514264337593543950335")

func mustDecimal(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// convertDecimal parses the strict XML Schema decimal form first. Exponent
// notation is not part of that form but was accepted by earlier protocol
// versions, so a failed strict parse is retried with an exponent-tolerant
// one.
func convertDecimal(core string) (any, error) {
	s := strings.Trim(core, xmlWhitespace)

	d, err := parseDecimal(s, false)
	if err == nil {
		return d, nil
	}
	if !scanNumber(s, false) {
		if d, lerr := parseDecimal(s, true); lerr == nil {
			return d, nil
		}
	}
	return nil, err
}

// parseDecimal parses s as a finite decimal within the 96-bit range.
// Exponent notation is only accepted when exponent is set.
func parseDecimal(s string, exponent bool) (*apd.Decimal, error) {
	if !scanNumber(s, exponent) {
		return nil, fmt.Errorf("%w: invalid decimal %q", ErrPayloadMalformed, s)
	}

	d, _, err := apd.NewFromString(canonicalNumber(s))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid decimal %q: %w", ErrPayloadMalformed, s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("%w: decimal %q is not finite", ErrPayloadMalformed, s)
	}

	var abs apd.Decimal
	abs.Abs(d)
	if abs.Cmp(maxDecimal) > 0 {
		return nil, fmt.Errorf("%w: decimal %q out of range", ErrPayloadMalformed, s)
	}
	return d, nil
}

// canonicalNumber rewrites a number accepted by scanNumber so that it has
// no leading '+' and digits on both sides of any decimal point.
func canonicalNumber(s string) string {
	neg := false
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && (i == len(s)-1 || s[i+1] == 'e' || s[i+1] == 'E') {
		s = s[:i] + s[i+1:]
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatDecimal renders d in plain notation, which the strict parser
// accepts.
func formatDecimal(d *apd.Decimal) string {
	return d.Text('f')
}
