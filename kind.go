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
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"

	"rivaas.dev/literal/spatial"
)

// Kind identifies a primitive type a literal can be parsed into.
// Nullability is not part of a Kind; see [TypeReference].
type Kind uint8

const (
	KindInvalid Kind = iota

	Boolean
	Byte
	SByte
	Int16
	Int32
	Int64
	Single
	Double
	Decimal
	String
	Binary
	Guid
	DateTime
	DateTimeOffset
	Time

	Geography
	GeographyPoint
	GeographyLineString
	GeographyPolygon
	GeographyMultiPoint
	GeographyMultiLineString
	GeographyMultiPolygon
	GeographyCollection

	Geometry
	GeometryPoint
	GeometryLineString
	GeometryPolygon
	GeometryMultiPoint
	GeometryMultiLineString
	GeometryMultiPolygon
	GeometryCollection

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:              "invalid",
	Boolean:                  "Edm.Boolean",
	Byte:                     "Edm.Byte",
	SByte:                    "Edm.SByte",
	Int16:                    "Edm.Int16",
	Int32:                    "Edm.Int32",
	Int64:                    "Edm.Int64",
	Single:                   "Edm.Single",
	Double:                   "Edm.Double",
	Decimal:                  "Edm.Decimal",
	String:                   "Edm.String",
	Binary:                   "Edm.Binary",
	Guid:                     "Edm.Guid",
	DateTime:                 "Edm.DateTime",
	DateTimeOffset:           "Edm.DateTimeOffset",
	Time:                     "Edm.Time",
	Geography:                "Edm.Geography",
	GeographyPoint:           "Edm.GeographyPoint",
	GeographyLineString:      "Edm.GeographyLineString",
	GeographyPolygon:         "Edm.GeographyPolygon",
	GeographyMultiPoint:      "Edm.GeographyMultiPoint",
	GeographyMultiLineString: "Edm.GeographyMultiLineString",
	GeographyMultiPolygon:    "Edm.GeographyMultiPolygon",
	GeographyCollection:      "Edm.GeographyCollection",
	Geometry:                 "Edm.Geometry",
	GeometryPoint:            "Edm.GeometryPoint",
	GeometryLineString:       "Edm.GeometryLineString",
	GeometryPolygon:          "Edm.GeometryPolygon",
	GeometryMultiPoint:       "Edm.GeometryMultiPoint",
	GeometryMultiLineString:  "Edm.GeometryMultiLineString",
	GeometryMultiPolygon:     "Edm.GeometryMultiPolygon",
	GeometryCollection:       "Edm.GeometryCollection",
}

// String returns the EDM name of the kind, e.g. "Edm.Int64".
func (k Kind) String() string {
	if k >= kindCount {
		return "invalid"
	}
	return kindNames[k]
}

// ParseKind resolves an EDM type name. The "Edm." namespace is optional.
func ParseKind(name string) (Kind, bool) {
	if !strings.HasPrefix(name, "Edm.") {
		name = "Edm." + name
	}
	for k := Boolean; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsSpatial reports whether k is a geography or geometry kind.
func (k Kind) IsSpatial() bool {
	return k >= Geography && k < kindCount
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// spatialKind maps a spatial Kind onto the family and shape understood by
// the spatial package.
func (k Kind) spatialKind() spatial.Kind {
	switch {
	case k >= Geography && k <= GeographyCollection:
		return spatial.Kind{Family: spatial.Geography, Shape: spatial.Shape(k - Geography)}
	case k >= Geometry && k <= GeometryCollection:
		return spatial.Kind{Family: spatial.Geometry, Shape: spatial.Shape(k - Geometry)}
	default:
		return spatial.Kind{}
	}
}

// Go types produced for each kind.
var (
	decimalType  = reflect.TypeFor[*apd.Decimal]()
	guidType     = reflect.TypeFor[uuid.UUID]()
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	spatialType  = reflect.TypeFor[spatial.Value]()
)

// GoType returns the Go type of values parsed for k, or nil for an invalid
// kind.
func (k Kind) GoType() reflect.Type {
	switch k {
	case Boolean:
		return reflect.TypeFor[bool]()
	case Byte:
		return reflect.TypeFor[uint8]()
	case SByte:
		return reflect.TypeFor[int8]()
	case Int16:
		return reflect.TypeFor[int16]()
	case Int32:
		return reflect.TypeFor[int32]()
	case Int64:
		return reflect.TypeFor[int64]()
	case Single:
		return reflect.TypeFor[float32]()
	case Double:
		return reflect.TypeFor[float64]()
	case Decimal:
		return decimalType
	case String:
		return reflect.TypeFor[string]()
	case Binary:
		return reflect.TypeFor[[]byte]()
	case Guid:
		return guidType
	case DateTime, DateTimeOffset:
		return timeType
	case Time:
		return durationType
	}
	if k.IsSpatial() {
		return spatialType
	}
	return nil
}

// TypeReference describes the requested type of a literal. It is
// implemented by metadata models; a bare [Kind] is a non-nullable
// reference to itself.
type TypeReference interface {
	PrimitiveKind() Kind
	IsNullable() bool
}

// PrimitiveKind implements TypeReference.
func (k Kind) PrimitiveKind() Kind { return k }

// IsNullable implements TypeReference.
func (k Kind) IsNullable() bool { return false }

type nullableKind struct{ kind Kind }

func (n nullableKind) PrimitiveKind() Kind { return n.kind }
func (n nullableKind) IsNullable() bool    { return true }
func (n nullableKind) String() string      { return "Nullable(" + n.kind.String() + ")" }

// Nullable returns a nullable reference to k. Parsing treats it exactly
// like k.
func Nullable(k Kind) TypeReference {
	return nullableKind{kind: k}
}

// underlying strips nullability from t.
func underlying(t TypeReference) Kind {
	if t == nil {
		return KindInvalid
	}
	return t.PrimitiveKind()
}
