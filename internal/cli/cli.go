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

// Package cli implements the literal command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rivaas.dev/literal"
	"rivaas.dev/literal/config"
	"rivaas.dev/literal/config/codec"
	"rivaas.dev/literal/internal/logging"
	"rivaas.dev/literal/problem"
)

// ErrPrintedError is returned when a failure has already been written to
// the output as a problem document.
var ErrPrintedError = errors.New("terminating because of errors")

// Command is the state shared by all subcommands.
type Command struct {
	root    *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
	environ []string

	configPath string
	logLevel   string
	output     string

	cfg       *config.Config
	logger    *slog.Logger
	codec     *literal.Codec
	formatter problem.Formatter
}

// Main runs the command with the process arguments and environment and
// returns the exit code.
func Main() int {
	err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Environ())
	if err != nil {
		if !errors.Is(err, ErrPrintedError) {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

// Run executes the command line args.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, environ []string) error {
	c := newCommand(stdout, stderr, environ)
	c.root.SetArgs(args)
	return c.root.ExecuteContext(ctx)
}

func newCommand(stdout, stderr io.Writer, environ []string) *Command {
	root := &cobra.Command{
		Use:   "literal",
		Short: "literal parses and formats typed URI literals.",
		Long: `literal converts between the textual literals used in resource
URIs, ETags and filter expressions and typed values.

Each literal is read according to its context: ETags and parenthesized
keys require full markup such as 123L or guid'...', keys written as path
segments carry none, and filter expressions additionally accept geography
and geometry literals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	c := &Command{root: root, stdout: stdout, stderr: stderr, environ: environ}
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return c.setup(cmd)
	}

	addGlobalFlags(root.PersistentFlags(), c)
	root.AddCommand(
		newParseCmd(c),
		newFormatCmd(c),
		newBatchCmd(c),
	)
	return c
}

func addGlobalFlags(f *pflag.FlagSet, c *Command) {
	f.StringVar(&c.configPath, "config", "", "configuration file (yaml, toml or json)")
	f.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	f.StringVarP(&c.output, "output", "o", "", "output encoding: json, yaml or toml")
}

// setup loads the configuration, applies flag overrides and builds the
// logger, codec and problem formatter.
func (c *Command) setup(cmd *cobra.Command) error {
	opts := []config.Option{config.WithEnviron(c.environ)}
	if c.configPath != "" {
		opts = append(opts, config.WithFile(c.configPath))
	}
	cfg, err := config.Load(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if flags.Changed("output") {
		cfg.Output = c.output
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.New(
		logging.WithHandlerType(logging.HandlerType(cfg.Log.Handler)),
		logging.WithLevel(level),
		logging.WithOutput(c.stderr),
		logging.WithEnviron(c.environ),
	)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.logger = logger
	c.formatter = problem.New(cfg.Problem.Format, cfg.Problem.BaseURL)
	c.codec, err = literal.New(
		literal.WithLogger(logger),
		literal.WithEvents(literal.Events{
			Parsed: func(k literal.Kind, p literal.Policy) {
				logger.Debug("literal parsed", "type", k.String(), "policy", p.String())
			},
		}),
	)
	return err
}

// write encodes v in the configured output encoding.
func (c *Command) write(v any) error {
	enc, err := codec.Get(codec.Type(c.cfg.Output))
	if err != nil {
		return err
	}
	data, err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s output: %w", c.cfg.Output, err)
	}
	if _, err = c.stdout.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(c.stdout, "\n")
	}
	return err
}

// problemBody renders err as a problem document that every output
// encoding can represent.
func (c *Command) problemBody(instance string, err error) any {
	body := c.formatter.Format(instance, err).Body
	if d, ok := body.(problem.Detail); ok {
		return d.Map()
	}
	return body
}
