package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"slackmark.site/slackmark/internal/slackmark"
	"slackmark.site/slackmark/metadata"
	"slackmark.site/slackmark/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "slackmark: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var (
		configPath string
		outPath    string
		message    bool
		timing     bool
		indent     bool
	)
	flags := pflag.NewFlagSet("slackmark", pflag.ContinueOnError)
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file, or a directory holding "+metadata.ConfigFileName)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&message, "message", "m", false, "Emit a whole message with fallback text instead of a bare block array")
	flags.BoolVar(&timing, "timing", false, "Report conversion time on stderr")
	flags.BoolVar(&indent, "indent", false, "Indent the JSON output")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: slackmark [flags] [input.md]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 1 {
		return fmt.Errorf("expected at most one input, got %d", flags.NArg())
	}

	opts := slackmark.DefaultOptions()
	if configPath != "" {
		cfg, err := metadata.ReadConfig(configPath)
		if err != nil {
			return err
		}
		opts = slackmark.OptionsFromConfig(cfg)
	}

	input := stdin
	if flags.NArg() == 1 && flags.Arg(0) != "-" {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}
	source, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var done func()
	if timing {
		done = util.Timer("convert")
	}
	msg, err := slackmark.ConvertMessage(string(source), opts)
	if done != nil {
		done()
	}
	if err != nil {
		return err
	}

	var out any = msg
	if !message {
		out = msg.Blocks
	}

	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
