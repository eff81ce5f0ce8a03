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
	"os"

	"github.com/spf13/cobra"

	"rivaas.dev/literal/config"
	"rivaas.dev/literal/config/codec"
)

// request is one entry of a batch file.
type request struct {
	Type     string `config:"type"`
	Text     string `config:"text"`
	Context  string `config:"context"`
	Segments *bool  `config:"segments"`
	Nullable bool   `config:"nullable"`
}

type batchFile struct {
	Requests []request `config:"requests"`
}

func newBatchCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "parse every literal listed in a file",
		Long: `batch reads a YAML, TOML or JSON file with a list of requests and
prints one result per request. Requests that omit context or segments use
the configured defaults.

  requests:
    - type: Edm.Int64
      text: 123L
    - type: Edm.String
      text: $$literal
      context: key
      segments: true

The command exits with status 1 if any request failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := readBatch(args[0])
			if err != nil {
				return err
			}

			results := make([]map[string]any, 0, len(reqs))
			failed := 0
			for i, r := range reqs {
				out := c.parseRequest(r)
				out["index"] = i
				if _, bad := out["error"]; bad {
					failed++
				}
				results = append(results, out)
			}

			c.logger.Info("batch finished", "file", args[0], "requests", len(reqs), "failed", failed)
			if err = c.write(map[string]any{"results": results}); err != nil {
				return err
			}
			if failed > 0 {
				return ErrPrintedError
			}
			return nil
		},
	}
	return cmd
}

// readBatch decodes the requests of a batch file.
func readBatch(path string) ([]request, error) {
	typ, err := codec.TypeFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec, err := codec.Get(typ)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err = dec.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	var f batchFile
	if err = config.Decode(raw, &f); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return f.Requests, nil
}

// parseRequest parses one batch request. Failures are reported in the
// result under "error" as a problem document.
func (c *Command) parseRequest(r request) map[string]any {
	context := r.Context
	if context == "" {
		context = c.cfg.Context
	}
	segments := c.cfg.KeysAsSegments
	if r.Segments != nil {
		segments = *r.Segments
	}

	ref, err := typeRef(r.Type, r.Nullable)
	if err != nil {
		return map[string]any{"type": r.Type, "text": r.Text, "error": map[string]any{"detail": err.Error()}}
	}
	policy, err := policyFor(context, segments)
	if err != nil {
		return map[string]any{"type": r.Type, "text": r.Text, "error": map[string]any{"detail": err.Error()}}
	}

	v, err := c.codec.Parse(policy, ref, r.Text)
	if err != nil {
		return map[string]any{"type": ref.PrimitiveKind().String(), "text": r.Text, "error": c.problemBody(r.Text, err)}
	}
	out := result(ref.PrimitiveKind(), policy, v)
	out["text"] = r.Text
	return out
}
