package planfile

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/cronplan/internal/job"
)

// Output is the output setting of a plan or job: either a redirection string
// or a table with stdout and stderr files.
type Output struct {
	job.Output
}

// UnmarshalTOML implements toml.Unmarshaler.
func (o *Output) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		o.Output = job.OutputString(v)
		return nil
	case map[string]any:
		var stdout, stderr *string
		for key, raw := range v {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("output.%s must be a string, got %T", key, raw)
			}
			switch key {
			case "stdout":
				stdout = &s
			case "stderr":
				stderr = &s
			default:
				return fmt.Errorf("unknown output key %q (expected: stdout, stderr)", key)
			}
		}
		o.Output = job.OutputFiles(stdout, stderr)
		return nil
	default:
		return fmt.Errorf("output must be a string or a table, got %T", data)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Output) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		o.Output = job.OutputString(node.Value)
		return nil
	case yaml.MappingNode:
		var files struct {
			Stdout *string `yaml:"stdout"`
			Stderr *string `yaml:"stderr"`
		}
		for i := 0; i < len(node.Content); i += 2 {
			if key := node.Content[i].Value; key != "stdout" && key != "stderr" {
				return fmt.Errorf("line %d: unknown output key %q (expected: stdout, stderr)", node.Content[i].Line, key)
			}
		}
		if err := node.Decode(&files); err != nil {
			return err
		}
		o.Output = job.OutputFiles(files.Stdout, files.Stderr)
		return nil
	default:
		return fmt.Errorf("line %d: output must be a string or a mapping", node.Line)
	}
}

// Vars is an ordered set of environment variables.
//
// TOML tables carry no order, so they are sorted by key. YAML mappings keep
// their document order.
type Vars struct {
	job.Env
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Vars) UnmarshalTOML(data any) error {
	table, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("environment must be a table, got %T", data)
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	env := make(job.Env, 0, len(keys))
	for _, key := range keys {
		value, err := scalar(key, table[key])
		if err != nil {
			return err
		}
		env = env.Set(key, value)
	}
	v.Env = env
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: environment must be a mapping", node.Line)
	}

	env := make(job.Env, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: variable %q must be a scalar", value.Line, key.Value)
		}
		env = env.Set(key.Value, value.Value)
	}
	v.Env = env
	return nil
}

func scalar(key string, value any) (string, error) {
	switch value.(type) {
	case string, int64, float64, bool:
		return fmt.Sprint(value), nil
	default:
		return "", fmt.Errorf("variable %q must be a scalar, got %T", key, value)
	}
}
