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

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/literal"
)

func newFormatCmd(c *Command) *cobra.Command {
	var (
		typeName string
		segments bool
		binary   bool
	)

	cmd := &cobra.Command{
		Use:   "format VALUE",
		Short: "render a plain value as a literal",
		Long: `format reads VALUE in its plain form, as it would appear in a key
path segment without markup, and prints it as a literal of the type given
by --type. Spatial values are given in well-known text.

Examples:

  $ literal format --type Edm.Int64 42          # 42L
  $ literal format --type String "O'Neil"       # 'O''Neil'
  $ literal format --type Int64 --binary 42     # binary'34324C'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, ok := literal.ParseKind(typeName)
			if !ok {
				_, err := typeRef(typeName, false)
				return err
			}

			v, err := plainValue(c.codec, k, args[0])
			if err != nil {
				if werr := c.write(c.problemBody(args[0], err)); werr != nil {
					return werr
				}
				return ErrPrintedError
			}

			var text string
			if k.IsSpatial() {
				text, err = literal.Format(k, v)
			} else {
				text, err = literal.FormatForKey(segments, k, v)
			}
			if err != nil {
				return err
			}
			if binary {
				text = literal.FormatBinaryFallback(text)
			}

			c.logger.Debug("literal formatted", "type", k.String(), "literal", text)
			return c.write(map[string]any{
				"type":    k.String(),
				"literal": text,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&typeName, "type", "t", "", "EDM type name, e.g. Edm.Int64 (required)")
	f.BoolVar(&segments, "segments", false, "render a key path segment instead of a full literal")
	f.BoolVar(&binary, "binary", false, "re-encode the literal as a binary literal")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// plainValue decodes a value written without markup. The segment policy
// reads exactly that form once a leading '$' is escaped.
func plainValue(codec *literal.Codec, k literal.Kind, s string) (any, error) {
	if k.IsSpatial() {
		return codec.ParseForExpression(k, s)
	}
	if strings.HasPrefix(s, "$") {
		s = "$" + s
	}
	return codec.ParseForKey(true, k, s)
}
