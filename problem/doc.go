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

// Package problem renders errors as machine-readable error documents.
//
// Two formats are provided: [RFC9457] produces RFC 9457 problem details
// ("application/problem+json") and [Simple] produces a flat
// {"error", "code", "details"} object. Both inspect the error chain for the
// optional [ErrorType], [ErrorCode] and [ErrorDetails] interfaces, which
// *literal.ParseError implements:
//
//	_, err := literal.ParseForETag(literal.Int64, "123")
//	resp := problem.NewRFC9457("https://example.com/problems").Format("/Orders", err)
//	// resp.Status == 400
//	// resp.Body.(problem.Detail).Type == "https://example.com/problems/literal_format_mismatch"
//
// Errors that implement none of the interfaces are reported as 500.
package problem
