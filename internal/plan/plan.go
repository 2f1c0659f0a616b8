// Package plan aggregates jobs into a named block of crontab text.
//
// A Plan owns an ordered list of jobs plus defaults shared by them. Its rendered
// content is delimited by sentinel comments so the block can later be located and
// replaced inside a crontab that also holds unrelated entries:
//
//	# Begin Plan generated jobs for: main
//	MAILTO="ops@example.com"
//	0 0 * * * cd /web && backup.sh
//	# End Plan generated jobs for: main
package plan

import (
	"fmt"
	"strings"

	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/job"
)

// DefaultName is the plan name used when none is given.
const DefaultName = constants.DefaultPlanName

// Plan is a named, ordered collection of jobs.
type Plan struct {
	name      string
	user      string
	defaults  job.Defaults
	variables job.Env
	bootstrap []string
	jobs      []job.Job
}

// Option configures a Plan.
type Option func(*Plan)

// WithPath sets the default working directory of jobs.
func WithPath(path string) Option {
	return func(p *Plan) { p.defaults.Path = path }
}

// WithEnvironment sets the default command environment of jobs.
func WithEnvironment(env job.Env) Option {
	return func(p *Plan) { p.defaults.Environment = append(job.Env(nil), env...) }
}

// WithOutput sets the default output redirection suffix of jobs.
func WithOutput(output string) Option {
	return func(p *Plan) { p.defaults.Output = output }
}

// WithInterpreter sets the interpreter used by script and module jobs.
func WithInterpreter(interpreter string) Option {
	return func(p *Plan) { p.defaults.Interpreter = interpreter }
}

// WithUser sets the crontab owner the plan is installed for.
func WithUser(user string) Option {
	return func(p *Plan) { p.user = user }
}

// New creates an empty plan. The name identifies the plan's block in the crontab.
func New(name string, opts ...Option) (*Plan, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	p := &Plan{name: name}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ValidateName checks that name can be embedded in the block sentinels.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("plan name is required")
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("plan name %q must be a single line", name)
	}
	if strings.Contains(name, constants.SentinelMarker) {
		return fmt.Errorf("plan name %q must not contain %q", name, constants.SentinelMarker)
	}
	return nil
}

// Name returns the plan name.
func (p *Plan) Name() string { return p.name }

// User returns the crontab owner, empty for the invoking user.
func (p *Plan) User() string { return p.user }

// Defaults returns the defaults applied to registered jobs.
func (p *Plan) Defaults() job.Defaults { return p.defaults }

// Jobs returns the registered jobs in insertion order.
func (p *Plan) Jobs() []job.Job {
	return append([]job.Job(nil), p.jobs...)
}

// BootstrapCommands returns the commands to run before (de)installation.
func (p *Plan) BootstrapCommands() []string {
	return append([]string(nil), p.bootstrap...)
}

// Variables returns the crontab-level environment assignments.
func (p *Plan) Variables() job.Env {
	return append(job.Env(nil), p.variables...)
}

// Bootstrap registers commands executed once before the crontab is touched.
func (p *Plan) Bootstrap(commands ...string) {
	for _, c := range commands {
		if strings.TrimSpace(c) != "" {
			p.bootstrap = append(p.bootstrap, c)
		}
	}
}

// Env sets a crontab environment variable emitted at the top of the block.
func (p *Plan) Env(key, value string) {
	p.variables = p.variables.Set(key, value)
}

// Add resolves j against the plan defaults and appends it.
func (p *Plan) Add(j job.Job) error {
	if err := j.Validate(); err != nil {
		return fmt.Errorf("job %d (%q): %w", len(p.jobs)+1, j.Task, err)
	}
	p.jobs = append(p.jobs, job.Resolve(j, p.defaults))
	return nil
}

// Command registers a command job.
func (p *Plan) Command(task, every, at string) error {
	return p.Add(job.Job{Kind: job.KindCommand, Task: task, Every: every, At: at})
}

// Script registers a script job.
func (p *Plan) Script(task, every, at string) error {
	return p.Add(job.Job{Kind: job.KindScript, Task: task, Every: every, At: at})
}

// Module registers a module job.
func (p *Plan) Module(task, every, at string) error {
	return p.Add(job.Job{Kind: job.KindModule, Task: task, Every: every, At: at})
}

// Raw registers a raw job.
func (p *Plan) Raw(task, every, at string) error {
	return p.Add(job.Job{Kind: job.KindRaw, Task: task, Every: every, At: at})
}

// BeginMarker returns the comment line opening the block of plan name.
func BeginMarker(name string) string {
	return fmt.Sprintf(constants.BeginSentinelFormat, name)
}

// EndMarker returns the comment line closing the block of plan name.
func EndMarker(name string) string {
	return fmt.Sprintf(constants.EndSentinelFormat, name)
}

// Crons compiles every job into its crontab line.
// The first job that fails to compile aborts rendering.
func (p *Plan) Crons() ([]string, error) {
	lines := make([]string, 0, len(p.jobs))
	for i, j := range p.jobs {
		line, err := j.Cron()
		if err != nil {
			return nil, fmt.Errorf("job %d (%q): %w", i+1, j.Task, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Content renders the complete block: sentinels, variables and cron lines,
// terminated by a newline.
func (p *Plan) Content() (string, error) {
	crons, err := p.Crons()
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(crons)+len(p.variables)+2)
	lines = append(lines, BeginMarker(p.name))
	lines = append(lines, p.variables.Lines()...)
	lines = append(lines, crons...)
	lines = append(lines, EndMarker(p.name))

	return strings.Join(lines, "\n") + "\n", nil
}
