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

// Package spatial parses geography and geometry literals written in
// well-known text.
//
// A spatial literal may carry an optional type marker and quotes
// (geography'...' or geometry'...') and an optional SRID prefix:
//
//	geography'SRID=4326;POINT(-122.3 47.6)'
//	geometry'LINESTRING(0 0, 1 1)'
//	POLYGON((0 0, 1 0, 1 1, 0 0))
//
// Parsing of the well-known text itself is delegated to
// [github.com/twpayne/go-geom/encoding/wkt]. The shape of the decoded value
// is checked against the requested [Kind].
package spatial
