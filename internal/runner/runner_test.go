package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/cronplan/internal/crontab"
	"github.com/aatumaykin/cronplan/internal/logger"
	"github.com/aatumaykin/cronplan/internal/metrics"
	"github.com/aatumaykin/cronplan/internal/plan"
	"github.com/aatumaykin/cronplan/internal/schedule"
)

type fakeStore struct {
	content    string
	reads      int
	installs   int
	installErr error
}

func (f *fakeStore) Read(ctx context.Context) (string, error) {
	f.reads++
	return f.content, nil
}

func (f *fakeStore) Install(ctx context.Context, content string) error {
	if f.installErr != nil {
		return f.installErr
	}
	f.installs++
	f.content = content
	return nil
}

type fakeExecutor struct {
	commands []string
	fail     map[string]bool
}

func (f *fakeExecutor) Execute(ctx context.Context, command string, out io.Writer) error {
	f.commands = append(f.commands, command)
	if f.fail[command] {
		return errors.New("exit status 1")
	}
	_, err := io.WriteString(out, "ran "+command+"\n")
	return err
}

var fixedNow = time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

type fixture struct {
	store  *fakeStore
	exec   *fakeExecutor
	out    *bytes.Buffer
	logs   *bytes.Buffer
	runner *Runner
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	logs := &bytes.Buffer{}
	log, err := logger.NewWithWriter(logger.Config{Level: "debug", Format: "json"}, logs)
	require.NoError(t, err)

	f := &fixture{
		store: &fakeStore{},
		exec:  &fakeExecutor{fail: map[string]bool{}},
		out:   &bytes.Buffer{},
		logs:  logs,
	}
	opts = append([]Option{
		WithOutput(f.out),
		WithExecutor(f.exec),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	f.runner = New(crontab.NewSynchronizer(f.store, log), log, opts...)
	return f
}

func newPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.New("main", plan.WithPath("/web"))
	require.NoError(t, err)
	require.NoError(t, p.Command("backup.sh", "1.day", "12:00"))
	return p
}

const mainBlock = "# Begin Plan generated jobs for: main\n" +
	"0 12 * * * backup.sh\n" +
	"# End Plan generated jobs for: main\n"

func TestRun_Check(t *testing.T) {
	f := newFixture(t)

	result, err := f.runner.Run(context.Background(), newPlan(t), ModeCheck)
	require.NoError(t, err)

	assert.Equal(t, mainBlock+"[message] Your crontab file was not updated.\n", f.out.String())
	assert.Equal(t, crontab.ActionUnchanged, result.Action)
	assert.Equal(t, mainBlock, result.Block)
	assert.Equal(t, 1, result.Jobs)
	assert.Zero(t, f.store.reads)
	assert.Zero(t, f.store.installs)

	_, err = uuid.Parse(result.RunID)
	assert.NoError(t, err)
	assert.Contains(t, f.logs.String(), result.RunID)
}

func TestRun_CheckPreview(t *testing.T) {
	f := newFixture(t)

	p, err := plan.New("main")
	require.NoError(t, err)
	require.NoError(t, p.Raw("backup.sh", "1.day", "12:00"))
	require.NoError(t, p.Raw("startup.sh", "reboot", ""))
	require.NoError(t, p.Raw("sunday.sh", "0 0 * * 7", ""))

	_, err = f.runner.Run(context.Background(), p, ModeCheck)
	require.NoError(t, err)

	logs := f.logs.String()
	assert.Contains(t, logs, `"next":"2024-01-01T12:00:00Z"`)
	assert.Contains(t, logs, "job has no calendar schedule")
	assert.Contains(t, logs, "schedule not understood by preview")
}

func TestRun_Update(t *testing.T) {
	f := newFixture(t)
	f.store.content = "MAILTO=root\n"

	result, err := f.runner.Run(context.Background(), newPlan(t), ModeUpdate)
	require.NoError(t, err)

	assert.Equal(t, crontab.ActionUpdated, result.Action)
	assert.Equal(t, "MAILTO=root\n\n"+mainBlock, f.store.content)
	assert.Equal(t, "[write] crontab file updated\n", f.out.String())
}

func TestRun_Write(t *testing.T) {
	f := newFixture(t)
	f.store.content = "0 0 * * * foreign.sh\n"

	result, err := f.runner.Run(context.Background(), newPlan(t), ModeWrite)
	require.NoError(t, err)

	assert.Equal(t, crontab.ActionWritten, result.Action)
	assert.Equal(t, mainBlock, f.store.content)
	assert.Zero(t, f.store.reads)
}

func TestRun_Clear(t *testing.T) {
	f := newFixture(t)
	f.store.content = "0 0 * * * foreign.sh\n\n" + mainBlock

	result, err := f.runner.Run(context.Background(), newPlan(t), ModeClear)
	require.NoError(t, err)
	assert.Equal(t, crontab.ActionCleared, result.Action)
	assert.Equal(t, "0 0 * * * foreign.sh\n", f.store.content)

	f.out.Reset()
	result, err = f.runner.Run(context.Background(), newPlan(t), ModeClear)
	require.NoError(t, err)
	assert.Equal(t, crontab.ActionUnchanged, result.Action)
	assert.Empty(t, f.out.String())
}

func TestRun_RenderErrorStopsEverything(t *testing.T) {
	f := newFixture(t)

	p := newPlan(t)
	p.Bootstrap("mkdir -p /tmp/logs")
	require.NoError(t, p.Command("report.sh", "2.fortnight", ""))

	_, err := f.runner.Run(context.Background(), p, ModeUpdate)
	require.Error(t, err)

	var parseErr *schedule.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Empty(t, f.exec.commands)
	assert.Zero(t, f.store.reads)
	assert.Zero(t, f.store.installs)
}

func TestRun_Bootstrap(t *testing.T) {
	f := newFixture(t)
	f.exec.fail["false"] = true

	p := newPlan(t)
	p.Bootstrap("mkdir -p /tmp/logs", "false", "touch /tmp/ready")

	_, err := f.runner.Run(context.Background(), p, ModeUpdate)
	require.NoError(t, err)

	assert.Equal(t, []string{"mkdir -p /tmp/logs", "false", "touch /tmp/ready"}, f.exec.commands)
	assert.Equal(t, "Starting bootstrap...\n"+
		"ran mkdir -p /tmp/logs\n"+
		"ran touch /tmp/ready\n"+
		"Bootstrap finished!\n\n"+
		"[write] crontab file updated\n", f.out.String())
	assert.Contains(t, f.logs.String(), `"level":"WARN","msg":"bootstrap command failed"`)
	assert.Equal(t, 1, f.store.installs)
}

func TestRun_BootstrapCancelled(t *testing.T) {
	f := newFixture(t)

	p := newPlan(t)
	p.Bootstrap("sleep 10")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.runner.Run(ctx, p, ModeUpdate)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.exec.commands)
	assert.Zero(t, f.store.installs)
}

func TestRun_SyncError(t *testing.T) {
	f := newFixture(t)
	f.store.content = "# Begin Plan generated jobs for: main\n0 0 * * * orphan.sh\n"

	_, err := f.runner.Run(context.Background(), newPlan(t), ModeUpdate)

	var syncErr *crontab.SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Zero(t, f.store.installs)
	assert.Contains(t, f.logs.String(), "run failed")
}

func TestRun_InvalidMode(t *testing.T) {
	f := newFixture(t)

	_, err := f.runner.Run(context.Background(), newPlan(t), Mode("deploy"))
	assert.ErrorContains(t, err, "unknown run mode")
}

func TestRun_Metrics(t *testing.T) {
	m := metrics.New("cronplan")
	textfile := filepath.Join(t.TempDir(), "cronplan.prom")
	f := newFixture(t, WithMetrics(m, textfile))

	_, err := f.runner.Run(context.Background(), newPlan(t), ModeUpdate)
	require.NoError(t, err)

	f.store.installErr = &crontab.SyncError{Op: "install", Reason: "couldn't write crontab"}
	_, err = f.runner.Run(context.Background(), newPlan(t), ModeWrite)
	require.Error(t, err)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `cronplan_runs_total{mode="update",status="success"} 1`)
	assert.Contains(t, text, `cronplan_runs_total{mode="write",status="failure"} 1`)
	assert.Contains(t, text, `cronplan_plan_jobs{plan="main"} 1`)
}

func TestRun_MetricsTextfileFailureIsNotFatal(t *testing.T) {
	m := metrics.New("cronplan")
	f := newFixture(t, WithMetrics(m, filepath.Join(t.TempDir(), "missing", "cronplan.prom")))

	_, err := f.runner.Run(context.Background(), newPlan(t), ModeCheck)
	require.NoError(t, err)
	assert.Contains(t, f.logs.String(), "failed to write metrics")
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeCheck, false},
		{"check", ModeCheck, false},
		{"WRITE", ModeWrite, false},
		{" update ", ModeUpdate, false},
		{"clear", ModeClear, false},
		{"install", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.False(t, ModeCheck.Modifies())
	assert.True(t, ModeClear.Modifies())
}

func TestShellExecutor(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("requires /bin/sh")
	}

	var out bytes.Buffer
	e := ShellExecutor{Dir: t.TempDir()}

	require.NoError(t, e.Execute(context.Background(), "echo hello | tr a-z A-Z; pwd >/dev/null", &out))
	assert.Equal(t, "HELLO\n", out.String())

	err := e.Execute(context.Background(), "echo oops >&2; exit 3", &out)
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "oops\n"))
}
