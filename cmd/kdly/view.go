package main

import (
	"github.com/mwh/kdly/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range orStdin(args) {
		doc, err := parseArg(arg)
		if err != nil {
			return err
		}
		opts := []encode.EncodeOption{
			encode.Indent(cfg.Indent),
			encode.EncodeColors(encode.NewColors()),
		}
		if err := encode.Encode(doc, cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}
