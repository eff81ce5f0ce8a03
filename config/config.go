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

// Package config loads the settings of the literal command.
//
// Settings come from built-in defaults, an optional YAML, TOML or JSON
// file, and LITERAL_* environment variables, in increasing precedence:
//
//	cfg, err := config.Load(ctx,
//		config.WithFile("literal.yaml"),
//		config.WithEnviron(os.Environ()),
//	)
//
// The merged settings are checked against a JSON Schema before they are
// bound to [Config].
package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/literal/config/codec"
)

// EnvPrefix is the prefix of environment variables read by [Load].
const EnvPrefix = "LITERAL_"

// Config holds the command settings.
type Config struct {
	Log            Log     `config:"log" json:"log" yaml:"log" toml:"log"`
	Output         string  `config:"output" json:"output" yaml:"output" toml:"output"`
	KeysAsSegments bool    `config:"keys_as_segments" json:"keys_as_segments" yaml:"keys_as_segments" toml:"keys_as_segments"`
	Context        string  `config:"context" json:"context" yaml:"context" toml:"context"`
	Problem        Problem `config:"problem" json:"problem" yaml:"problem" toml:"problem"`
}

// Log configures the command logger.
type Log struct {
	Level   string `config:"level" json:"level" yaml:"level" toml:"level"`
	Handler string `config:"handler" json:"handler" yaml:"handler" toml:"handler"`
}

// Problem configures how parse failures are reported.
type Problem struct {
	Format  string `config:"format" json:"format" yaml:"format" toml:"format"`
	BaseURL string `config:"base_url" json:"base_url" yaml:"base_url" toml:"base_url"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Log:     Log{Level: "warn", Handler: "text"},
		Output:  "json",
		Context: "etag",
		Problem: Problem{Format: "rfc9457"},
	}
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		allow []string
	}{
		{"log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}},
		{"log.handler", c.Log.Handler, []string{"json", "text", "console"}},
		{"output", c.Output, []string{"json", "yaml", "toml"}},
		{"context", c.Context, []string{"etag", "key", "expression"}},
		{"problem.format", c.Problem.Format, []string{"rfc9457", "simple"}},
	}

	var errs error
	for _, chk := range checks {
		if !contains(chk.allow, chk.value) {
			errs = errors.Join(errs, NewFieldError("binding", chk.field, "validate",
				fmt.Errorf("%q is not one of %s", chk.value, strings.Join(chk.allow, ", "))))
		}
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Option configures [Load].
type Option func(*loader) error

type loader struct {
	data    []byte
	typ     codec.Type
	path    string
	environ []string
}

// WithFile reads settings from path. The encoding is chosen by extension.
func WithFile(path string) Option {
	return func(l *loader) error {
		typ, err := codec.TypeFromPath(path)
		if err != nil {
			return NewError("file", "read", err)
		}
		l.path, l.typ = path, typ
		return nil
	}
}

// WithContent reads settings from data encoded as typ.
func WithContent(data []byte, typ codec.Type) Option {
	return func(l *loader) error {
		l.data, l.typ = data, typ
		return nil
	}
}

// WithEnviron reads LITERAL_* overrides from environ, given in the
// "KEY=value" form of os.Environ.
func WithEnviron(environ []string) Option {
	return func(l *loader) error {
		l.environ = environ
		return nil
	}
}

// envKeys maps environment variable names, without prefix, to settings.
var envKeys = map[string]string{
	"LOG_LEVEL":        "log.level",
	"LOG_HANDLER":      "log.handler",
	"OUTPUT":           "output",
	"KEYS_AS_SEGMENTS": "keys_as_segments",
	"CONTEXT":          "context",
	"PROBLEM_FORMAT":   "problem.format",
	"PROBLEM_BASE_URL": "problem.base_url",
}

//go:embed schema.json
var schemaJSON []byte

var schema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err = c.AddResource("literal-config.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("literal-config.json")
})

// Load builds a Config from defaults, the configured file and environment
// overrides. All failures are returned as *Error.
func Load(ctx context.Context, opts ...Option) (*Config, error) {
	if ctx == nil {
		return nil, errors.New("context cannot be nil")
	}

	l := &loader{}
	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(l))
	}
	if errs != nil {
		return nil, errs
	}

	values, err := defaultValues()
	if err != nil {
		return nil, NewError("defaults", "encode", err)
	}

	file, err := l.readFile()
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(&values, file, mergo.WithOverride); err != nil {
		return nil, NewError("file", "merge", err)
	}

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	env, err := envValues(l.environ)
	if err != nil {
		return nil, err
	}
	if err = mergo.Merge(&values, env, mergo.WithOverride); err != nil {
		return nil, NewError("env", "merge", err)
	}

	if err = validateSchema(values); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err = Decode(values, cfg); err != nil {
		return nil, NewError("binding", "bind", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode binds a generic map to the struct pointed to by out using the
// "config" tag. String values are converted to the field type.
func Decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = dec.Decode(in); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}
	return nil
}

// defaultValues renders Default as a generic map.
func defaultValues() (map[string]any, error) {
	data, err := json.Marshal(Default())
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (l *loader) readFile() (map[string]any, error) {
	if l.path == "" && l.data == nil {
		return map[string]any{}, nil
	}

	data := l.data
	if l.path != "" {
		var err error
		if data, err = os.ReadFile(l.path); err != nil {
			return nil, NewError("file", "read", err)
		}
	}

	dec, err := codec.Get(l.typ)
	if err != nil {
		return nil, NewError("file", "decode", err)
	}
	var m map[string]any
	if err = dec.Decode(data, &m); err != nil {
		return nil, NewError("file", "decode", err)
	}
	return normalizeMapKeys(m), nil
}

// envValues collects LITERAL_* overrides. Boolean settings are converted
// so that schema validation sees their real type.
func envValues(environ []string) (map[string]any, error) {
	out := map[string]any{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key, known := envKeys[strings.TrimPrefix(name, EnvPrefix)]
		if !known {
			continue
		}

		var v any = strings.TrimSpace(value)
		if key == "keys_as_segments" {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return nil, NewFieldError("env", name, "decode", err)
			}
			v = b
		}
		setPath(out, key, v)
	}
	return out, nil
}

// setPath stores v under a dotted key, creating nested maps.
func setPath(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

// normalizeMapKeys lowercases keys recursively so that file keys match
// case-insensitively.
func normalizeMapKeys(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeMapKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// validateSchema checks values against the embedded JSON Schema. The map
// is passed through encoding/json first so that numbers and nested maps
// from any decoder have their JSON types.
func validateSchema(values map[string]any) error {
	s, err := schema()
	if err != nil {
		return NewError("schema", "compile", err)
	}
	data, err := json.Marshal(values)
	if err != nil {
		return NewError("schema", "validate", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return NewError("schema", "validate", err)
	}
	if err = s.Validate(doc); err != nil {
		return NewError("schema", "validate", err)
	}
	return nil
}
