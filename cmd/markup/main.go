package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/danderson/markup"
	"github.com/kr/pretty"
)

var globalArgs struct {
	Verbose bool `flag:"v,Log type configuration as it is built"`
}

var renderArgs struct {
	Root   string `flag:"root,Name of the root element"`
	Elem   string `flag:"elem,Element name for entries of top-level sequences"`
	Indent int    `flag:"indent,default=2,Spaces per indentation level (0 for compact output)"`
	Format string `flag:"format,Input format: json or yaml or toml (default from file name)"`
	Dump   bool   `flag:"dump,Print the decoded input value instead of rendering it"`
}

func main() {
	root := &command.C{
		Name:     "markup",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "render",
				Usage: "render [flags] file",
				Help: `Render a data file as markup.

The file is decoded as JSON, YAML or TOML, and the resulting value is
serialized as markup on stdout. Use "-" to read from stdin, in which
case --format defaults to json.

Mappings keep the order of the input file, except for TOML tables,
whose entries are sorted by key. Sequences of scalars render with
element names "string", "integer" and so on, unless --elem is given.`,
				SetFlags: command.Flags(flax.MustBind, &renderArgs),
				Run:      command.Adapt(runRender),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := root.NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if globalArgs.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "markup",
	})
}

func runRender(env *command.Env, file string) error {
	logger := newLogger()

	format := renderArgs.Format
	if format == "" {
		format = formatFromName(file)
	}
	dec, ok := decoders[format]
	if !ok {
		return fmt.Errorf("unknown input format %q", format)
	}

	data, err := readInput(file)
	if err != nil {
		return err
	}
	v, err := dec(data)
	if err != nil {
		return fmt.Errorf("decoding %s as %s: %w", file, format, err)
	}
	logger.Debug("decoded input", "file", file, "format", format, "bytes", len(data))

	if renderArgs.Dump {
		fmt.Printf("%# v\n", pretty.Formatter(v))
		return nil
	}

	if renderArgs.Indent < 0 {
		return errors.New("--indent must not be negative")
	}
	s := markup.Serializer{Logger: logger}
	doc, err := s.Document(v, renderArgs.Root, renderArgs.Elem)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", file, err)
	}
	doc.Indent = strings.Repeat(" ", renderArgs.Indent)
	if _, err := doc.WriteTo(os.Stdout); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

func readInput(file string) ([]byte, error) {
	if file == "-" {
		bs, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return bs, nil
	}
	return os.ReadFile(file)
}
