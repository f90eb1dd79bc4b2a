package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mwh/kdly/encode"
	"github.com/mwh/kdly/parse"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Diff {
		return fmt.Errorf("%w: -w and -d are mutually exclusive", cli.ErrUsage)
	}
	for _, arg := range orStdin(args) {
		if err := fmtArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func fmtArg(cfg *FmtConfig, cc *cli.Context, arg string) error {
	src, err := readArg(arg)
	if err != nil {
		return err
	}
	doc, err := parse.Parse(src)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", arg, err)
	}
	switch {
	case cfg.Diff:
		formatted, err := encode.String(doc, encode.Indent(cfg.Indent))
		if err != nil {
			return err
		}
		return writeDiff(cc.Out, arg, string(src), formatted)
	case cfg.Write:
		if arg == "-" {
			return fmt.Errorf("%w: -w needs a named file", cli.ErrUsage)
		}
		formatted, err := encode.String(doc, encode.Indent(cfg.Indent))
		if err != nil {
			return err
		}
		if formatted == string(src) {
			return nil
		}
		return os.WriteFile(arg, []byte(formatted), 0644)
	default:
		return encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...)
	}
}

func writeDiff(w io.Writer, name, a, b string) error {
	if a == b {
		return nil
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s formatted\n", name, name); err != nil {
		return err
	}
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if _, err := fmt.Fprintf(w, "%s%s\n", prefix, line); err != nil {
				return err
			}
		}
	}
	return nil
}
