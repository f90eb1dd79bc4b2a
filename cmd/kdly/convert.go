package main

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/mwh/kdly/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, arg := range orStdin(args) {
		doc, err := parseArg(arg)
		if err != nil {
			return err
		}
		var out []byte
		if cfg.YAML {
			out, err = yaml.Marshal(docToAny(doc))
		} else {
			out, err = json.MarshalIndent(docToAny(doc), "", "  ")
			out = append(out, '\n')
		}
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		if _, err := cc.Out.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// docToAny renders a document as plain maps and slices for the generic
// JSON and YAML encoders.
func docToAny(d *ir.Document) []any {
	res := make([]any, 0, d.Len())
	for _, n := range d.Nodes {
		res = append(res, nodeToAny(n))
	}
	return res
}

func nodeToAny(n *ir.Node) map[string]any {
	m := map[string]any{"name": n.Name}
	if n.Tag != "" {
		m["tag"] = n.Tag
	}
	if len(n.Args) > 0 {
		args := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			args = append(args, valueToAny(a))
		}
		m["args"] = args
	}
	if n.Props.Len() > 0 {
		props := make(map[string]any, n.Props.Len())
		for _, k := range n.Props.Keys() {
			v, _ := n.Props.Get(k)
			props[k] = valueToAny(v)
		}
		m["props"] = props
	}
	if n.Children != nil {
		m["children"] = docToAny(n.Children)
	}
	return m
}

func valueToAny(v *ir.Value) any {
	iv := v.Interface()
	if b, ok := iv.(*big.Int); ok {
		iv = json.Number(b.String())
	}
	if v.Tag == "" {
		return iv
	}
	return map[string]any{"tag": v.Tag, "value": iv}
}
