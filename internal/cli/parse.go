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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"rivaas.dev/literal"
	"rivaas.dev/literal/spatial"
)

func newParseCmd(c *Command) *cobra.Command {
	var (
		typeName string
		context  string
		segments bool
		nullable bool
	)

	cmd := &cobra.Command{
		Use:   "parse TEXT",
		Short: "parse a literal into a typed value",
		Long: `parse reads TEXT as a literal of the type given by --type and prints
the decoded value. On failure a problem document is printed instead and the
command exits with status 1.

Examples:

  $ literal parse --type Edm.Int64 123L
  $ literal parse --type Guid --context key --segments 0d3a7d4c-42e4-4a8e-a9a0-6d4bbd5ef64a
  $ literal parse --type GeographyPoint --context expression "geography'POINT(1 2)'"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("context") {
				context = c.cfg.Context
			}
			if !cmd.Flags().Changed("segments") {
				segments = c.cfg.KeysAsSegments
			}

			ref, err := typeRef(typeName, nullable)
			if err != nil {
				return err
			}
			policy, err := policyFor(context, segments)
			if err != nil {
				return err
			}

			text := args[0]
			v, err := c.codec.Parse(policy, ref, text)
			if err != nil {
				if werr := c.write(c.problemBody(text, err)); werr != nil {
					return werr
				}
				return ErrPrintedError
			}
			return c.write(result(ref.PrimitiveKind(), policy, v))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&typeName, "type", "t", "", "EDM type name, e.g. Edm.Int64 (required)")
	f.StringVar(&context, "context", "etag", "where the literal occurs: etag, key or expression")
	f.BoolVar(&segments, "segments", false, "keys are written as path segments")
	f.BoolVar(&nullable, "nullable", false, "the type is nullable")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// typeRef resolves an EDM type name.
func typeRef(name string, nullable bool) (literal.TypeReference, error) {
	k, ok := literal.ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", name)
	}
	if nullable {
		return literal.Nullable(k), nil
	}
	return k, nil
}

// policyFor maps a literal context to its policy.
func policyFor(context string, segments bool) (literal.Policy, error) {
	switch strings.ToLower(context) {
	case "etag":
		return literal.ForETags(), nil
	case "key":
		return literal.ForKeys(segments), nil
	case "expression":
		return literal.ForExpressions(), nil
	default:
		return 0, fmt.Errorf("unknown context %q (want etag, key or expression)", context)
	}
}

// result is the printed form of a parsed literal.
func result(k literal.Kind, p literal.Policy, v any) map[string]any {
	return map[string]any{
		"type":   k.String(),
		"policy": p.String(),
		"value":  display(v),
	}
}

// display renders a parsed value as text that every output encoding can
// represent, including non-finite floats.
func display(v any) string {
	switch x := v.(type) {
	case []byte:
		return strings.ToUpper(fmt.Sprintf("%x", x))
	case *apd.Decimal:
		return x.Text('f')
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case time.Duration:
		return x.String()
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case spatial.Value:
		s, err := spatial.Format(x)
		if err != nil {
			return err.Error()
		}
		return s
	default:
		return cast.ToString(x)
	}
}
