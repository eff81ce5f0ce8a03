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
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"rivaas.dev/literal/spatial"
)

// Format renders v as a literal of kind k in the fully marked form that
// [PolicyDefault] accepts. Spatial values are rendered in the form
// [PolicySpatial] accepts.
func Format(k Kind, v any) (string, error) {
	if k.IsSpatial() {
		sv, ok := v.(spatial.Value)
		if !ok {
			return "", fmt.Errorf("%w: %s expects spatial.Value, got %T", ErrValueType, k, v)
		}
		return spatial.Format(sv)
	}

	conv, ok := lookup(k)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, k)
	}
	core, err := formatCore(k, v)
	if err != nil {
		return "", err
	}

	f := conv.format
	if f.quoted() {
		core = quote(core)
	}
	return f.Prefix + core + f.Suffix, nil
}

// FormatForKey renders v as a key literal. Keys written as path segments
// carry no markup; a leading '$' is escaped by doubling it.
func FormatForKey(keysAsSegments bool, k Kind, v any) (string, error) {
	if !keysAsSegments {
		return Format(k, v)
	}
	if !Supported(k) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, k)
	}
	core, err := formatCore(k, v)
	if err != nil {
		return "", err
	}
	return escapeLeadingDollar(core), nil
}

// FormatBinaryFallback re-encodes an already formatted literal as a binary
// literal. [PolicyDefault] decodes it back to the original literal before
// parsing it as the requested kind.
func FormatBinaryFallback(literal string) string {
	return PrefixBinary + "'" + encodeHex([]byte(literal)) + "'"
}

// Range of date/time values the literal grammar can carry.
const (
	minYear       = 1
	maxYear       = 9999
	maxZoneOffset = 14 * 3600
)

// formatCore renders the canonical core text of v, without markup.
func formatCore(k Kind, v any) (string, error) {
	mismatch := func() (string, error) {
		return "", fmt.Errorf("%w: %s expects %s, got %T", ErrValueType, k, k.GoType(), v)
	}

	switch k {
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return mismatch()
		}
		return strconv.FormatBool(b), nil
	case Byte:
		n, ok := v.(uint8)
		if !ok {
			return mismatch()
		}
		return strconv.FormatUint(uint64(n), 10), nil
	case SByte:
		n, ok := v.(int8)
		if !ok {
			return mismatch()
		}
		return strconv.FormatInt(int64(n), 10), nil
	case Int16:
		n, ok := v.(int16)
		if !ok {
			return mismatch()
		}
		return strconv.FormatInt(int64(n), 10), nil
	case Int32:
		n, ok := v.(int32)
		if !ok {
			return mismatch()
		}
		return strconv.FormatInt(int64(n), 10), nil
	case Int64:
		n, ok := v.(int64)
		if !ok {
			return mismatch()
		}
		return strconv.FormatInt(n, 10), nil
	case Single:
		f, ok := v.(float32)
		if !ok {
			return mismatch()
		}
		return formatFloat(float64(f), 32), nil
	case Double:
		f, ok := v.(float64)
		if !ok {
			return mismatch()
		}
		return formatFloat(f, 64), nil
	case Decimal:
		d, ok := v.(*apd.Decimal)
		if !ok || d == nil {
			return mismatch()
		}
		if d.Form != apd.Finite {
			return "", fmt.Errorf("%w: decimal %s is not finite", ErrValueType, d)
		}
		return formatDecimal(d), nil
	case String:
		s, ok := v.(string)
		if !ok {
			return mismatch()
		}
		return s, nil
	case Binary:
		b, ok := v.([]byte)
		if !ok {
			return mismatch()
		}
		return encodeHex(b), nil
	case Guid:
		u, ok := v.(uuid.UUID)
		if !ok {
			return mismatch()
		}
		return u.String(), nil
	case DateTime, DateTimeOffset:
		t, ok := v.(time.Time)
		if !ok {
			return mismatch()
		}
		if y := t.Year(); y < minYear || y > maxYear {
			return "", fmt.Errorf("%w: %s year %d outside %04d-%04d", ErrValueType, k, y, minYear, maxYear)
		}
		if _, off := t.Zone(); off%60 != 0 || off > maxZoneOffset || off < -maxZoneOffset {
			return "", fmt.Errorf("%w: %s zone offset %ds is not whole minutes within 14h", ErrValueType, k, off)
		}
		return t.Format(time.RFC3339Nano), nil
	case Time:
		d, ok := v.(time.Duration)
		if !ok {
			return mismatch()
		}
		return formatDuration(d), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, k)
	}
}

// formatFloat renders f in the XML Schema float lexical space.
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	default:
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
}
