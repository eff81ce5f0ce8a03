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

//go:build !integration

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"rivaas.dev/literal/config/codec"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestLoad_Defaults() {
	cfg, err := Load(context.Background())
	s.Require().NoError(err)
	s.Equal(Default(), cfg)
}

func (s *ConfigTestSuite) TestLoad_YAML() {
	path := s.write("literal.yaml", `
log:
  level: debug
output: yaml
keys_as_segments: true
context: key
`)

	cfg, err := Load(context.Background(), WithFile(path))
	s.Require().NoError(err)
	s.Equal("debug", cfg.Log.Level)
	s.Equal("text", cfg.Log.Handler)
	s.Equal("yaml", cfg.Output)
	s.True(cfg.KeysAsSegments)
	s.Equal("key", cfg.Context)
	s.Equal("rfc9457", cfg.Problem.Format)
}

func (s *ConfigTestSuite) TestLoad_TOML() {
	path := s.write("literal.toml", `
output = "toml"

[problem]
format = "simple"
base_url = "https://example.com/problems"
`)

	cfg, err := Load(context.Background(), WithFile(path))
	s.Require().NoError(err)
	s.Equal("toml", cfg.Output)
	s.Equal("simple", cfg.Problem.Format)
	s.Equal("https://example.com/problems", cfg.Problem.BaseURL)
}

func (s *ConfigTestSuite) TestLoad_JSONContent() {
	cfg, err := Load(context.Background(),
		WithContent([]byte(`{"Context": "expression", "LOG": {"Handler": "json"}}`), codec.TypeJSON))
	s.Require().NoError(err)
	s.Equal("expression", cfg.Context)
	s.Equal("json", cfg.Log.Handler)
	s.Equal("warn", cfg.Log.Level)
}

func (s *ConfigTestSuite) TestLoad_EnvOverridesFile() {
	path := s.write("literal.yaml", "output: yaml\nkeys_as_segments: true\n")

	cfg, err := Load(context.Background(),
		WithFile(path),
		WithEnviron([]string{
			"LITERAL_OUTPUT=toml",
			"LITERAL_KEYS_AS_SEGMENTS=0",
			"LITERAL_LOG_LEVEL=error",
			"LITERAL_UNKNOWN=1",
			"HOME=/root",
			"malformed",
		}))
	s.Require().NoError(err)
	s.Equal("toml", cfg.Output)
	s.False(cfg.KeysAsSegments)
	s.Equal("error", cfg.Log.Level)
}

func (s *ConfigTestSuite) TestLoad_EnvBadBool() {
	_, err := Load(context.Background(), WithEnviron([]string{"LITERAL_KEYS_AS_SEGMENTS=maybe"}))

	var cerr *Error
	s.Require().ErrorAs(err, &cerr)
	s.Equal("env", cerr.Source)
	s.Equal("LITERAL_KEYS_AS_SEGMENTS", cerr.Field)
}

func (s *ConfigTestSuite) TestLoad_SchemaRejectsUnknownValue() {
	_, err := Load(context.Background(), WithContent([]byte("output: xml\n"), codec.TypeYAML))

	var cerr *Error
	s.Require().ErrorAs(err, &cerr)
	s.Equal("schema", cerr.Source)
	s.Equal("validate", cerr.Operation)
}

func (s *ConfigTestSuite) TestLoad_SchemaRejectsUnknownKey() {
	_, err := Load(context.Background(), WithContent([]byte(`{"verbose": true}`), codec.TypeJSON))

	var cerr *Error
	s.Require().ErrorAs(err, &cerr)
	s.Equal("schema", cerr.Source)
}

func (s *ConfigTestSuite) TestLoad_FileErrors() {
	_, err := Load(context.Background(), WithFile(filepath.Join(s.dir, "missing.yaml")))
	var cerr *Error
	s.Require().ErrorAs(err, &cerr)
	s.Equal("read", cerr.Operation)

	_, err = Load(context.Background(), WithFile("literal.ini"))
	s.Require().ErrorAs(err, &cerr)
	s.Equal("file", cerr.Source)

	path := s.write("broken.toml", "output = ")
	_, err = Load(context.Background(), WithFile(path))
	s.Require().ErrorAs(err, &cerr)
	s.Equal("decode", cerr.Operation)
}

func (s *ConfigTestSuite) TestLoad_CanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *ConfigTestSuite) TestValidate() {
	cfg := Default()
	s.NoError(cfg.Validate())

	cfg.Output = "xml"
	cfg.Log.Handler = "syslog"
	err := cfg.Validate()
	s.Require().Error(err)

	var cerr *Error
	s.Require().True(errors.As(err, &cerr))
	s.Contains(err.Error(), "log.handler")
	s.Contains(err.Error(), "output")
}

func (s *ConfigTestSuite) TestDecode() {
	type request struct {
		Type     string `config:"type"`
		Segments bool   `config:"segments"`
	}

	var r request
	s.Require().NoError(Decode(map[string]any{"type": "Edm.Int64", "segments": "true"}, &r))
	s.Equal(request{Type: "Edm.Int64", Segments: true}, r)

	s.Error(Decode(map[string]any{"typo": 1}, &r))
}

func (s *ConfigTestSuite) TestError() {
	err := NewFieldError("env", "LITERAL_X", "decode", errors.New("bad"))
	s.Equal("config error in env.LITERAL_X during decode: bad", err.Error())
	s.Equal("config error in file during read: bad", NewError("file", "read", errors.New("bad")).Error())
	s.EqualError(errors.Unwrap(err), "bad")
}
