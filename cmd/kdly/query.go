package main

import (
	"fmt"

	"github.com/mwh/kdly/encode"
	"github.com/mwh/kdly/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires one argument, a predicate", cli.ErrUsage)
	}
	prog, err := expr.Compile(args[0], expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return fmt.Errorf("%w: bad predicate: %v", cli.ErrUsage, err)
	}
	for _, arg := range orStdin(args[1:]) {
		doc, err := parseArg(arg)
		if err != nil {
			return err
		}
		if err := queryDoc(cfg, cc, prog, doc); err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
	}
	return nil
}

func queryDoc(cfg *QueryConfig, cc *cli.Context, prog *vm.Program, d *ir.Document) error {
	for _, n := range d.Nodes {
		res, err := expr.Run(prog, nodeEnv(n))
		if err != nil {
			return err
		}
		if res.(bool) {
			if err := encode.EncodeNode(n, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
				return err
			}
		}
		if n.Children != nil {
			if err := queryDoc(cfg, cc, prog, n.Children); err != nil {
				return err
			}
		}
	}
	return nil
}

// nodeEnv exposes one node to a predicate. Argument and property values
// appear as plain Go values.
func nodeEnv(n *ir.Node) map[string]any {
	args := make([]any, 0, len(n.Args))
	for _, a := range n.Args {
		args = append(args, a.Interface())
	}
	props := make(map[string]any, n.Props.Len())
	for _, k := range n.Props.Keys() {
		v, _ := n.Props.Get(k)
		props[k] = v.Interface()
	}
	return map[string]any{
		"name":     n.Name,
		"tag":      n.Tag,
		"args":     args,
		"props":    props,
		"children": n.Children.Len(),
	}
}
