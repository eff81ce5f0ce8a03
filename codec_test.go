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
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"rivaas.dev/literal/spatial"
)

func TestPolicySelectors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PolicyDefault, ForETags())
	assert.Equal(t, PolicyDefault, ForKeys(false))
	assert.Equal(t, PolicySegment, ForKeys(true))
	assert.Equal(t, PolicySpatial, ForExpressions())

	assert.Equal(t, "default", PolicyDefault.String())
	assert.Equal(t, "spatial", PolicySpatial.String())
	assert.Equal(t, "segment", PolicySegment.String())
	assert.Equal(t, "unknown", Policy(9).String())
}

func TestParseForETag(t *testing.T) {
	t.Parallel()

	guid := uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")

	tests := []struct {
		name   string
		kind   Kind
		text   string
		want   any
		reason Reason
	}{
		{name: "int64 requires suffix", kind: Int64, text: "123", reason: ReasonFormatMismatch},
		{name: "int64 with suffix", kind: Int64, text: "123L", want: int64(123)},
		{name: "int64 lower case suffix", kind: Int64, text: "123l", want: int64(123)},
		{name: "int64 suffix only", kind: Int64, text: "L", reason: ReasonFormatMismatch},
		{name: "int64 overflow", kind: Int64, text: "9223372036854775808L", reason: ReasonPayloadMalformed},
		{name: "double without suffix", kind: Double, text: "1.5", want: 1.5},
		{name: "double with suffix", kind: Double, text: "1.5D", want: 1.5},
		{name: "single requires suffix", kind: Single, text: "1.5", reason: ReasonFormatMismatch},
		{name: "single with suffix", kind: Single, text: "1.5f", want: float32(1.5)},
		{name: "decimal", kind: Decimal, text: "3.14M", want: apd.New(314, -2)},
		{name: "decimal exponent", kind: Decimal, text: "1.23E2M", want: apd.New(123, 0)},
		{name: "decimal requires suffix", kind: Decimal, text: "3.14", reason: ReasonFormatMismatch},
		{name: "int32", kind: Int32, text: "42", want: int32(42)},
		{name: "int32 quoted", kind: Int32, text: "'42'", reason: ReasonPayloadMalformed},
		{name: "boolean", kind: Boolean, text: "true", want: true},
		{name: "string", kind: String, text: "'it''s'", want: "it's"},
		{name: "string unquoted", kind: String, text: "abc", reason: ReasonFormatMismatch},
		{name: "string lone quote", kind: String, text: "'it's'", reason: ReasonFormatMismatch},
		{name: "empty string", kind: String, text: "''", want: ""},
		{name: "binary", kind: Binary, text: "binary'48656C6C6F'", want: []byte("Hello")},
		{name: "binary short prefix", kind: Binary, text: "X'0aff'", want: []byte{0x0a, 0xff}},
		{name: "binary odd length", kind: Binary, text: "binary'4'", reason: ReasonPayloadMalformed},
		{name: "binary bad digit", kind: Binary, text: "binary'4G'", reason: ReasonPayloadMalformed},
		{name: "binary without prefix", kind: Binary, text: "'4142'", reason: ReasonFormatMismatch},
		{name: "binary empty", kind: Binary, text: "binary''", want: []byte{}},
		{name: "guid", kind: Guid, text: "guid'" + guid.String() + "'", want: guid},
		{name: "guid upper prefix", kind: Guid, text: "GUID'" + guid.String() + "'", want: guid},
		{name: "guid missing quote", kind: Guid, text: "guid'" + guid.String(), reason: ReasonFormatMismatch},
		{name: "guid bad payload", kind: Guid, text: "guid'nope'", reason: ReasonPayloadMalformed},
		{name: "datetime", kind: DateTime, text: "datetime'2024-05-06T07:08'",
			want: time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)},
		{name: "time", kind: Time, text: "time'PT1H'", want: time.Hour},
		{name: "time missing prefix", kind: Time, text: "'PT1H'", reason: ReasonFormatMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseForETag(tt.kind, tt.text)
			if tt.reason != 0 {
				var perr *ParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.reason, perr.Reason)
				assert.Equal(t, tt.kind, perr.Kind)
				assert.Equal(t, PolicyDefault, perr.Policy)
				assert.Equal(t, tt.text, perr.Text)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if d, ok := tt.want.(*apd.Decimal); ok {
				require.IsType(t, d, got)
				assert.Zero(t, d.Cmp(got.(*apd.Decimal)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseForKey_Parenthesized(t *testing.T) {
	t.Parallel()

	guid := uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")

	got, err := ParseForKey(false, Guid, "guid'"+guid.String()+"'")
	require.NoError(t, err)
	assert.Equal(t, guid, got)

	_, err = ParseForKey(false, Guid, "guid'"+guid.String())
	require.ErrorIs(t, err, ErrFormatMismatch)

	_, err = ParseForKey(false, Int64, "5")
	require.ErrorIs(t, err, ErrFormatMismatch)
}

func TestParseForKey_Segment(t *testing.T) {
	t.Parallel()

	guid := uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")

	tests := []struct {
		name   string
		kind   Kind
		text   string
		want   any
		reason Reason
	}{
		{name: "escaped dollar", kind: String, text: "$$literal", want: "$literal"},
		{name: "reserved dollar", kind: String, text: "$metadata", reason: ReasonFormatMismatch},
		{name: "lone dollar", kind: String, text: "$", want: "$"},
		{name: "dollar in middle", kind: String, text: "a$b", want: "a$b"},
		{name: "string is unquoted", kind: String, text: "'a'", want: "'a'"},
		{name: "int64 without suffix", kind: Int64, text: "5", want: int64(5)},
		{name: "int64 with suffix", kind: Int64, text: "5L", want: int64(5)},
		{name: "double with suffix", kind: Double, text: "2.5D", want: 2.5},
		{name: "single infinity", kind: Single, text: "INF", want: float32(math.Inf(1))},
		{name: "single negative infinity", kind: Single, text: "-INF", want: float32(math.Inf(-1))},
		{name: "single infinity with suffix", kind: Single, text: "INFf", want: float32(math.Inf(1))},
		{name: "single with suffix", kind: Single, text: "1.5F", want: float32(1.5)},
		{name: "single bad after suffix", kind: Single, text: "xf", reason: ReasonPayloadMalformed},
		{name: "decimal without suffix", kind: Decimal, text: "2.5", want: apd.New(25, -1)},
		{name: "guid bare", kind: Guid, text: guid.String(), want: guid},
		{name: "guid with prefix", kind: Guid, text: "guid'" + guid.String() + "'", reason: ReasonPayloadMalformed},
		{name: "binary bare hex", kind: Binary, text: "0A0B", want: []byte{0x0a, 0x0b}},
		{name: "binary with prefix", kind: Binary, text: "binary'0A'", reason: ReasonPayloadMalformed},
		{name: "int32 garbage", kind: Int32, text: "x", reason: ReasonPayloadMalformed},
		{name: "time", kind: Time, text: "PT2M", want: 2 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseForKey(true, tt.kind, tt.text)
			if tt.reason != 0 {
				var perr *ParseError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, tt.reason, perr.Reason)
				assert.Equal(t, PolicySegment, perr.Policy)
				return
			}
			require.NoError(t, err)
			if d, ok := tt.want.(*apd.Decimal); ok {
				assert.Zero(t, d.Cmp(got.(*apd.Decimal)))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseForKey_ReservedSegment(t *testing.T) {
	t.Parallel()

	_, err := ParseForKey(true, String, "$count")
	require.ErrorIs(t, err, ErrReservedSegment)
	require.ErrorIs(t, err, ErrFormatMismatch)
}

func TestParseForExpression_Spatial(t *testing.T) {
	t.Parallel()

	got, err := ParseForExpression(GeographyPoint, "geography'SRID=4326;POINT (1 2)'")
	require.NoError(t, err)
	v, ok := got.(spatial.Value)
	require.True(t, ok)
	assert.Equal(t, spatial.Geography, v.Family)
	assert.Equal(t, 4326, v.SRID)
	p, ok := v.Geom.(*geom.Point)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, p.FlatCoords())

	_, err = ParseForExpression(GeographyPoint, "geography'LINESTRING (0 0, 1 1)'")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonSpatial, perr.Reason)
	require.ErrorIs(t, err, ErrSpatial)
	require.ErrorIs(t, err, spatial.ErrShapeMismatch)

	got, err = ParseForExpression(Int32, "7")
	require.NoError(t, err)
	assert.Equal(t, int32(7), got)
}

func TestParse_SpatialOutsideExpressions(t *testing.T) {
	t.Parallel()

	for _, p := range []Policy{PolicyDefault, PolicySegment} {
		_, err := MustNew().Parse(p, GeometryPoint, "geometry'POINT (1 2)'")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, ReasonUnsupportedType, perr.Reason)
		assert.Equal(t, http.StatusInternalServerError, perr.HTTPStatus())
	}
}

func TestParse_UnsupportedKind(t *testing.T) {
	t.Parallel()

	for _, k := range []Kind{KindInvalid, Kind(200)} {
		_, err := ParseForETag(k, "1")
		require.ErrorIs(t, err, ErrUnsupportedType)
	}

	_, err := ParseForETag(nil, "1")
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestParse_UnknownPolicyPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		_, _ = MustNew().Parse(Policy(42), Int32, "1")
	})
}

func TestParse_NullableIsTransparent(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"5L", "5", "binary'354C'"} {
		a, aerr := ParseForETag(Int64, text)
		b, berr := ParseForETag(Nullable(Int64), text)
		assert.Equal(t, a, b, text)
		assert.Equal(t, aerr == nil, berr == nil, text)
	}

	ref := Nullable(Guid)
	assert.True(t, ref.IsNullable())
	assert.Equal(t, Guid, ref.PrimitiveKind())
	assert.False(t, Guid.IsNullable())
}

func TestParse_BinaryFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		text string
		want any
	}{
		{name: "int64", kind: Int64, text: FormatBinaryFallback("123L"), want: int64(123)},
		{name: "int32", kind: Int32, text: FormatBinaryFallback("7"), want: int32(7)},
		{name: "string", kind: String, text: FormatBinaryFallback("'hi'"), want: "hi"},
		{name: "guid", kind: Guid, text: FormatBinaryFallback("guid'01234567-89ab-cdef-0123-456789abcdef'"),
			want: uuid.MustParse("01234567-89ab-cdef-0123-456789abcdef")},
		{name: "binary is not reinterpreted", kind: Binary, text: "binary'3132'", want: []byte("12")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseForETag(tt.kind, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_BinaryFallbackDepthOne(t *testing.T) {
	t.Parallel()

	twice := FormatBinaryFallback(FormatBinaryFallback("123L"))
	_, err := ParseForETag(Int64, twice)
	require.ErrorIs(t, err, ErrFormatMismatch)

	// Binary literals are recognized inside a fallback only when Binary
	// itself was requested.
	got, err := ParseForETag(Binary, FormatBinaryFallback("binary'41'"))
	require.NoError(t, err)
	assert.Equal(t, []byte("binary'41'"), got)
}

func TestParse_BinaryFallbackFailure(t *testing.T) {
	t.Parallel()

	// The decoded payload is not an Int32 literal; the direct grammar is
	// not tried afterwards.
	_, err := ParseForETag(Int32, FormatBinaryFallback("abc"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, ReasonPayloadMalformed, perr.Reason)
}

func TestParse_BinaryFallbackInvalidUTF8(t *testing.T) {
	t.Parallel()

	got, err := ParseForETag(String, "binary'27FF27'")
	require.NoError(t, err)
	assert.Equal(t, "\uFFFD", got)
}

func TestParseAs(t *testing.T) {
	t.Parallel()

	c := MustNew()

	n, err := ParseAs[int64](c, ForETags(), Int64, "42L")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = ParseAs[int32](c, ForETags(), Int64, "42L")
	require.ErrorIs(t, err, ErrValueType)

	_, err = ParseAs[int64](c, ForETags(), Int64, "42")
	require.ErrorIs(t, err, ErrFormatMismatch)
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New(WithSpatialParser(nil))
	require.ErrorIs(t, err, ErrNilSpatialParser)

	assert.Panics(t, func() { MustNew(WithSpatialParser(nil)) })

	c, err := New(WithLogger(nil))
	require.NoError(t, err)
	_, err = c.ParseForETag(Int32, "x")
	require.Error(t, err)
}

func TestWithSpatialParser(t *testing.T) {
	t.Parallel()

	var seen Kind
	custom := SpatialParserFunc(func(kind Kind, text string) (spatial.Value, error) {
		seen = kind
		if text == "bad" {
			return spatial.Value{}, errors.New("custom failure")
		}
		return spatial.Value{Family: spatial.Geometry, SRID: 99}, nil
	})
	c := MustNew(WithSpatialParser(custom))

	got, err := c.ParseForExpression(Nullable(GeometryPolygon), "anything")
	require.NoError(t, err)
	assert.Equal(t, GeometryPolygon, seen)
	assert.Equal(t, 99, got.(spatial.Value).SRID)

	_, err = c.ParseForExpression(GeometryPolygon, "bad")
	require.ErrorIs(t, err, ErrSpatial)
	assert.EqualError(t, errors.Unwrap(err), "custom failure")
}

func TestWithEvents(t *testing.T) {
	t.Parallel()

	var parsed, fallbacks, failed atomic.Int32
	var lastFailure atomic.Pointer[ParseError]
	c := MustNew(WithEvents(Events{
		Parsed:         func(Kind, Policy) { parsed.Add(1) },
		BinaryFallback: func(Kind) { fallbacks.Add(1) },
		Failed: func(err *ParseError) {
			failed.Add(1)
			lastFailure.Store(err)
		},
	}))

	_, err := c.ParseForETag(Int64, "1L")
	require.NoError(t, err)
	_, err = c.ParseForETag(Int64, FormatBinaryFallback("2L"))
	require.NoError(t, err)
	_, err = c.ParseForETag(Int64, "3")
	require.Error(t, err)

	assert.Equal(t, int32(2), parsed.Load())
	assert.Equal(t, int32(1), fallbacks.Load())
	assert.Equal(t, int32(1), failed.Load())
	require.NotNil(t, lastFailure.Load())
	assert.Equal(t, "3", lastFailure.Load().Text)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := MustNew(WithLogger(logger))

	_, err := c.ParseForETag(Int64, FormatBinaryFallback("9L"))
	require.NoError(t, err)
	_, err = c.ParseForETag(Int64, "9")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "reinterpreting binary literal")
	assert.Contains(t, out, "literal parse failed")
	assert.Contains(t, out, `"reason":"format_mismatch"`)
}

func TestCodec_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := MustNew()
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.ParseForETag(Int64, FormatBinaryFallback("7L"))
			assert.NoError(t, err, i)
			assert.Equal(t, int64(7), got)
			_, err = c.ParseForKey(true, String, "$$x")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestParse_ResultTypeMatchesKind(t *testing.T) {
	t.Parallel()

	samples := map[Kind]string{
		Boolean:        "false",
		Byte:           "1",
		SByte:          "-1",
		Int16:          "1",
		Int32:          "1",
		Int64:          "1L",
		Single:         "1f",
		Double:         "1",
		Decimal:        "1M",
		String:         "'1'",
		Binary:         "X'01'",
		Guid:           "guid'01234567-89ab-cdef-0123-456789abcdef'",
		DateTime:       "datetime'2000-01-01T00:00'",
		DateTimeOffset: "datetimeoffset'2000-01-01T00:00:00+01:00'",
		Time:           "time'P1D'",
	}

	for k, text := range samples {
		got, err := ParseForETag(k, text)
		require.NoError(t, err, k)
		assert.Equal(t, k.GoType(), reflect.TypeOf(got), k)
	}
}
