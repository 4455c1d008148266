package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// print writes v to stdout in the selected output format.
func (g *Globals) print(v any) error {
	switch g.Output {
	case "yaml":
		// Round-trip through JSON so yaml uses the json field names.
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return err
		}
		plain(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return err
		}
		_, err = g.Stdout.Write(out)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(g.Stdout, string(data))
		return err
	}
}

func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}
