// Package planfile loads plan definitions from TOML or YAML files.
//
// A plan file names the plan, its defaults and its jobs:
//
//	name = "main"
//	path = "/web/app"
//	output = "null"
//
//	[[jobs]]
//	task = "backup.sh"
//	every = "1.day"
//	at = "hour.3"
package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aatumaykin/cronplan/internal/job"
	"github.com/aatumaykin/cronplan/internal/plan"
)

// Format is a plan file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file extensions other than .toml, .yaml and .yml.
var ErrUnknownFormat = errors.New("unknown plan file format")

// File is the decoded content of a plan file.
type File struct {
	Name        string   `toml:"name" yaml:"name"`
	Path        string   `toml:"path" yaml:"path"`
	User        string   `toml:"user" yaml:"user"`
	Interpreter string   `toml:"interpreter" yaml:"interpreter"`
	Bootstrap   []string `toml:"bootstrap" yaml:"bootstrap"`
	Output      Output   `toml:"output" yaml:"output"`
	Environment Vars     `toml:"environment" yaml:"environment"`
	Variables   Vars     `toml:"variables" yaml:"variables"`
	Jobs        []Entry  `toml:"jobs" yaml:"jobs"`
}

// Entry is one job of a plan file. Unset fields fall back to the plan defaults.
type Entry struct {
	Kind        string `toml:"kind" yaml:"kind"`
	Task        string `toml:"task" yaml:"task"`
	Every       string `toml:"every" yaml:"every"`
	At          string `toml:"at" yaml:"at"`
	Path        string `toml:"path" yaml:"path"`
	Interpreter string `toml:"interpreter" yaml:"interpreter"`
	Output      Output `toml:"output" yaml:"output"`
	Environment Vars   `toml:"environment" yaml:"environment"`
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s (expected .toml, .yaml or .yml)", ErrUnknownFormat, path)
	}
}

// Load reads and decodes the plan file at path.
func Load(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	return Decode(data, format)
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse plan file: %w", err)
		}
		if key, ok := unknownKey(meta); ok {
			return nil, fmt.Errorf("failed to parse plan file: unknown key %q", key.String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse plan file: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return &f, nil
}

// freeform tables are decoded by Output and Vars; any key is valid inside them.
var freeform = map[string]bool{"output": true, "environment": true, "variables": true}

func unknownKey(meta toml.MetaData) (toml.Key, bool) {
	for _, key := range meta.Undecoded() {
		if !inFreeform(key) {
			return key, true
		}
	}
	return nil, false
}

func inFreeform(key toml.Key) bool {
	for _, part := range key[:len(key)-1] {
		if freeform[part] {
			return true
		}
	}
	return false
}

// Plan builds the plan described by the file. interpreter is used for script
// and module jobs when the file does not name one. Without a path jobs run
// in the current working directory.
func (f *File) Plan(interpreter string) (*plan.Plan, error) {
	name := f.Name
	if name == "" {
		name = plan.DefaultName
	}
	path := f.Path
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		path = wd
	}
	if f.Interpreter != "" {
		interpreter = f.Interpreter
	}

	p, err := plan.New(name,
		plan.WithPath(path),
		plan.WithEnvironment(f.Environment.Env),
		plan.WithOutput(f.Output.String()),
		plan.WithInterpreter(interpreter),
		plan.WithUser(f.User),
	)
	if err != nil {
		return nil, err
	}

	p.Bootstrap(f.Bootstrap...)
	for _, v := range f.Variables.Env {
		p.Env(v.Key, v.Value)
	}

	for _, e := range f.Jobs {
		j, err := e.job()
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", e.Task, err)
		}
		if err := p.Add(j); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (e Entry) job() (job.Job, error) {
	kind, err := job.ParseKind(e.Kind)
	if err != nil {
		return job.Job{}, err
	}

	return job.Job{
		Kind:        kind,
		Task:        e.Task,
		Every:       e.Every,
		At:          e.At,
		Path:        e.Path,
		Environment: e.Environment.Env,
		Output:      e.Output.String(),
		Interpreter: e.Interpreter,
	}, nil
}
