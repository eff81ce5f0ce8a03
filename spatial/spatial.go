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

package spatial

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// Family distinguishes round-earth from flat-earth coordinates.
type Family uint8

const (
	// Geography values use geodetic coordinates.
	Geography Family = iota + 1

	// Geometry values use planar coordinates.
	Geometry
)

// String returns the literal marker of the family.
func (f Family) String() string {
	switch f {
	case Geography:
		return "geography"
	case Geometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// DefaultSRID returns the reference system assumed when a literal has no
// SRID prefix.
func (f Family) DefaultSRID() int {
	if f == Geography {
		return 4326
	}
	return 0
}

// Shape restricts the geometric type a literal may decode to.
type Shape uint8

const (
	ShapeAny Shape = iota
	ShapePoint
	ShapeLineString
	ShapePolygon
	ShapeMultiPoint
	ShapeMultiLineString
	ShapeMultiPolygon
	ShapeCollection
)

// String returns the WKT keyword of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeAny:
		return "any"
	case ShapePoint:
		return "POINT"
	case ShapeLineString:
		return "LINESTRING"
	case ShapePolygon:
		return "POLYGON"
	case ShapeMultiPoint:
		return "MULTIPOINT"
	case ShapeMultiLineString:
		return "MULTILINESTRING"
	case ShapeMultiPolygon:
		return "MULTIPOLYGON"
	case ShapeCollection:
		return "GEOMETRYCOLLECTION"
	default:
		return "unknown"
	}
}

// Kind is the requested spatial type: a family and an optional shape.
type Kind struct {
	Family Family
	Shape  Shape
}

// Value is a decoded spatial literal.
type Value struct {
	Family Family
	SRID   int
	Geom   geom.T
}

// Static errors for spatial parsing.
var (
	ErrInvalidLiteral = errors.New("invalid spatial literal")
	ErrInvalidSRID    = errors.New("invalid SRID")
	ErrShapeMismatch  = errors.New("spatial shape mismatch")
	ErrFamilyMismatch = errors.New("spatial family mismatch")
)

// Parse decodes text as a spatial literal of the given kind.
func Parse(kind Kind, text string) (Value, error) {
	if kind.Family != Geography && kind.Family != Geometry {
		return Value{}, fmt.Errorf("%w: unknown family %d", ErrInvalidLiteral, kind.Family)
	}

	body, err := removeMarker(kind.Family, strings.TrimSpace(text))
	if err != nil {
		return Value{}, err
	}

	srid, body, err := splitSRID(kind.Family, body)
	if err != nil {
		return Value{}, err
	}

	g, err := wkt.Unmarshal(body)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidLiteral, err)
	}

	if !matches(kind.Shape, g) {
		return Value{}, fmt.Errorf("%w: want %s, got %T", ErrShapeMismatch, kind.Shape, g)
	}

	return Value{Family: kind.Family, SRID: srid, Geom: g}, nil
}

// Format renders v as a marked, quoted literal that Parse accepts.
func Format(v Value) (string, error) {
	if v.Geom == nil {
		return "", fmt.Errorf("%w: nil geometry", ErrInvalidLiteral)
	}
	body, err := wkt.Marshal(v.Geom)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidLiteral, err)
	}
	return v.Family.String() + "'SRID=" + strconv.Itoa(v.SRID) + ";" + body + "'", nil
}

// removeMarker strips an optional family marker and the quotes that must
// follow it. A marker of the other family is rejected.
func removeMarker(family Family, text string) (string, error) {
	other := Geometry
	if family == Geometry {
		other = Geography
	}
	if hasPrefixFold(text, other.String()+"'") {
		return "", fmt.Errorf("%w: %s literal where %s expected", ErrFamilyMismatch, other, family)
	}

	marker := family.String()
	if !hasPrefixFold(text, marker) {
		return text, nil
	}
	text = text[len(marker):]
	if len(text) < 2 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return "", fmt.Errorf("%w: unbalanced quotes", ErrInvalidLiteral)
	}
	return strings.TrimSpace(text[1 : len(text)-1]), nil
}

// splitSRID removes a leading "SRID=n;" clause.
func splitSRID(family Family, text string) (int, string, error) {
	if !hasPrefixFold(text, "SRID=") {
		return family.DefaultSRID(), text, nil
	}
	end := strings.IndexByte(text, ';')
	if end < 0 {
		return 0, "", fmt.Errorf("%w: missing ';' after SRID", ErrInvalidSRID)
	}
	srid, err := strconv.Atoi(strings.TrimSpace(text[len("SRID="):end]))
	if err != nil || srid < 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidSRID, text[:end])
	}
	return srid, strings.TrimSpace(text[end+1:]), nil
}

func matches(shape Shape, g geom.T) bool {
	switch shape {
	case ShapeAny:
		return true
	case ShapePoint:
		_, ok := g.(*geom.Point)
		return ok
	case ShapeLineString:
		_, ok := g.(*geom.LineString)
		return ok
	case ShapePolygon:
		_, ok := g.(*geom.Polygon)
		return ok
	case ShapeMultiPoint:
		_, ok := g.(*geom.MultiPoint)
		return ok
	case ShapeMultiLineString:
		_, ok := g.(*geom.MultiLineString)
		return ok
	case ShapeMultiPolygon:
		_, ok := g.(*geom.MultiPolygon)
		return ok
	case ShapeCollection:
		_, ok := g.(*geom.GeometryCollection)
		return ok
	default:
		return false
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
