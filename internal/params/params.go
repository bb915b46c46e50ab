// Package params reads parameter files: flat objects mapping parameter names
// to scalar or list values, written as JSON, YAML or HCL attributes.
package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Extensions lists the file extensions Decode understands.
var Extensions = []string{".json", ".yaml", ".yml", ".hcl"}

// Load reads the parameter file at path.
func Load(path string) (map[string]cty.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file %s: %w", path, err)
	}
	values, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parameter file %s: %w", path, err)
	}
	return values, nil
}

// Decode parses data in the format given by the extension of filename.
func Decode(filename string, data []byte) (map[string]cty.Value, error) {
	var (
		values map[string]cty.Value
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		values, err = decodeJSON(data)
	case ".yaml", ".yml":
		values, err = decodeYAML(data)
	case ".hcl":
		values, err = decodeHCL(filename, data)
	default:
		return nil, producer.Configf("unsupported parameter file extension %q, expected one of %s", ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, err
	}
	for name, v := range values {
		if err := checkValue(v); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
	}
	return values, nil
}

func decodeJSON(data []byte) (map[string]cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if !ty.IsObjectType() {
		return nil, producer.Configf("parameters must be a JSON object, got %s", ty.FriendlyName())
	}
	v, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	values := v.AsValueMap()
	if values == nil {
		values = map[string]cty.Value{}
	}
	return values, nil
}

func decodeHCL(filename string, data []byte) (map[string]cty.Value, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		values[name] = v
	}
	return values, nil
}

// checkValue accepts primitives and flat sequences of primitives.
func checkValue(v cty.Value) error {
	if v.IsNull() {
		return producer.Configf("value must not be null")
	}
	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		return nil
	case ty.IsTupleType() || ty.IsListType():
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.IsNull() || !ev.Type().IsPrimitiveType() {
				return producer.Configf("list elements must be strings, numbers or booleans")
			}
		}
		return nil
	}
	return producer.Configf("nested %s values are not supported", ty.FriendlyName())
}
