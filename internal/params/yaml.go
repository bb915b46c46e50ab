package params

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (map[string]cty.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return map[string]cty.Value{}, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, producer.Configf("parameters must be a YAML mapping (line %d)", root.Line)
	}

	values := make(map[string]cty.Value, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], resolve(root.Content[i+1])
		if _, dup := values[key.Value]; dup {
			return nil, producer.Configf("parameter %s is set twice (line %d)", key.Value, key.Line)
		}
		v, err := yamlValue(val)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key.Value, err)
		}
		values[key.Value] = v
	}
	return values, nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlValue(n *yaml.Node) (cty.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.SequenceNode:
		elems := make([]cty.Value, 0, len(n.Content))
		for _, c := range n.Content {
			c = resolve(c)
			if c.Kind != yaml.ScalarNode {
				return cty.NilVal, producer.Configf("nested sequences and mappings are not supported (line %d)", c.Line)
			}
			v, err := yamlScalar(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), nil
	}
	return cty.NilVal, producer.Configf("nested mappings are not supported (line %d)", n.Line)
}

func yamlScalar(n *yaml.Node) (cty.Value, error) {
	switch n.ShortTag() {
	case "!!str":
		return cty.StringVal(n.Value), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return cty.NilVal, err
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return cty.NilVal, err
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return cty.NilVal, producer.Configf("%q is not a finite number (line %d)", n.Value, n.Line)
		}
		return cty.NumberFloatVal(f), nil
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return cty.NilVal, producer.Configf("unsupported YAML value %s (line %d)", n.ShortTag(), n.Line)
}
