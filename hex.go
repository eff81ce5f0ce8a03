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

import "fmt"

const upperHexDigits = "0123456789ABCDEF"

// hexNibble returns the 4-bit value of a hexadecimal digit.
func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeHex decodes an even-length string of hex digits.
func decodeHex(text string) ([]byte, error) {
	if len(text)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of hex digits (%d)", ErrPayloadMalformed, len(text))
	}

	out := make([]byte, len(text)/2)
	for i := range out {
		hi, ok1 := hexNibble(text[2*i])
		lo, ok2 := hexNibble(text[2*i+1])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: invalid hex digit in %q at offset %d", ErrPayloadMalformed, text, 2*i)
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

// encodeHex renders b as upper-case hex digits.
func encodeHex(b []byte) string {
	out := make([]byte, 2*len(b))
	for i, c := range b {
		out[2*i] = upperHexDigits[c>>4]
		out[2*i+1] = upperHexDigits[c&0x0F]
	}
	return string(out)
}
