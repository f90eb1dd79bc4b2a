package main

import (
	"github.com/mwh/kdly/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	bad := 0
	for _, arg := range orStdin(args) {
		src, err := readArg(arg)
		if err != nil {
			return err
		}
		if _, err := parse.Parse(src); err != nil {
			bad++
			if !cfg.Quiet {
				theLog.Error("invalid document", "file", arg, "err", err)
			}
		}
	}
	if bad > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
