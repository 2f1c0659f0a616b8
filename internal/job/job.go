// Package job renders a single scheduled job into one crontab line.
package job

import (
	"fmt"
	"strings"

	"github.com/wasilibs/go-re2"

	"github.com/aatumaykin/cronplan/internal/schedule"
)

// Kind selects the task template used to render a job.
type Kind string

const (
	// KindShell runs the task from the job path with its environment
	KindShell Kind = "shell"
	// KindCommand runs the task as is
	KindCommand Kind = "command"
	// KindScript runs the task as a script through the interpreter, from the job path
	KindScript Kind = "script"
	// KindModule runs the task as an interpreter module (-m)
	KindModule Kind = "module"
	// KindRaw emits the task verbatim, without output redirection
	KindRaw Kind = "raw"
)

// DefaultInterpreter is used by script and module jobs when none is configured.
const DefaultInterpreter = "python3"

var whitespace = re2.MustCompile(`\s+`)

// ParseKind converts a kind name; the empty string selects KindShell.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindShell, nil
	case KindShell, KindCommand, KindScript, KindModule, KindRaw:
		return k, nil
	default:
		return "", fmt.Errorf("invalid job kind: %s (expected: shell, command, script, module, raw)", s)
	}
}

// Template returns the task template for kind.
func Template(kind Kind) string {
	switch kind {
	case KindCommand:
		return "{task} {output}"
	case KindScript:
		return "cd {path} && {environment} {interpreter} {task} {output}"
	case KindModule:
		return "{environment} {interpreter} -m {task} {output}"
	case KindRaw:
		return "{task}"
	default:
		return "cd {path} && {environment} {task} {output}"
	}
}

// Job is one schedulable unit.
type Job struct {
	Kind        Kind
	Task        string
	Every       string
	At          string
	Path        string
	Environment Env
	Output      string // precomputed redirection suffix, see Output.String
	Interpreter string
}

// Defaults are the plan-wide values a job inherits when it leaves them unset.
type Defaults struct {
	Path        string
	Environment Env
	Output      string
	Interpreter string
}

// Resolve returns a copy of j with every unset field taken from d.
func Resolve(j Job, d Defaults) Job {
	if j.Kind == "" {
		j.Kind = KindShell
	}
	if j.Path == "" {
		j.Path = d.Path
	}
	if len(j.Environment) == 0 {
		j.Environment = d.Environment
	}
	if j.Output == "" {
		j.Output = d.Output
	}
	if j.Interpreter == "" {
		j.Interpreter = d.Interpreter
	}
	if j.Interpreter == "" {
		j.Interpreter = DefaultInterpreter
	}
	j.Environment = append(Env(nil), j.Environment...)
	return j
}

// Validate checks the fields that do not depend on the schedule language.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Task) == "" {
		return fmt.Errorf("task is required")
	}
	if strings.TrimSpace(j.Every) == "" {
		return fmt.Errorf("every is required")
	}
	if _, err := ParseKind(string(j.Kind)); err != nil {
		return err
	}
	return nil
}

// Command renders the task part of the cron line with whitespace collapsed.
func (j Job) Command() string {
	r := strings.NewReplacer(
		"{path}", j.Path,
		"{environment}", j.Environment.Prefix(),
		"{interpreter}", j.Interpreter,
		"{task}", j.Task,
		"{output}", j.Output,
	)
	return collapse(r.Replace(Template(j.Kind)))
}

// Schedule compiles Every and At into cron time fields.
func (j Job) Schedule() (string, error) {
	return schedule.Compile(j.Every, j.At)
}

// Cron renders the full crontab line: time fields followed by the command.
func (j Job) Cron() (string, error) {
	fields, err := j.Schedule()
	if err != nil {
		return "", err
	}
	return fields + " " + j.Command(), nil
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
