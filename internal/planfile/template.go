package planfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aatumaykin/cronplan/internal/constants"
)

// ErrExists is returned by WriteTemplate when the target exists and force is false.
var ErrExists = errors.New("plan file already exists")

// TemplateTOML is the schedule file written by quickstart.
const TemplateTOML = `# Use this file to easily define all of your cron jobs.
#
# It's helpful to understand cron before proceeding.
# http://en.wikipedia.org/wiki/Cron
#
# Preview with "cronplan check schedule.toml",
# install with "cronplan update schedule.toml".

name = "main"

# Defaults shared by all jobs. path defaults to the current directory.
# path = "/web/yourproject"
# output = "null"
# interpreter = "python3"
# bootstrap = ["mkdir -p /tmp/logs"]

# [environment]
# APP_ENV = "production"

# [variables]
# MAILTO = "ops@example.com"

# Register one command, script or module.
[[jobs]]
kind = "command"
task = "echo 'hello from cronplan'"
every = "1.day"
at = "hour.12"

# [[jobs]]
# kind = "script"
# task = "script.py"
# path = "/web/yourproject/scripts"
# every = "1.month"

# [[jobs]]
# kind = "module"
# task = "calendar"
# every = "february"
# at = "day.3"
`

// TemplateYAML is the YAML variant of TemplateTOML.
const TemplateYAML = `# Use this file to easily define all of your cron jobs.
#
# It's helpful to understand cron before proceeding.
# http://en.wikipedia.org/wiki/Cron
#
# Preview with "cronplan check schedule.yaml",
# install with "cronplan update schedule.yaml".

name: main

# Defaults shared by all jobs. path defaults to the current directory.
# Quote "null": a bare null leaves output unset.
# path: /web/yourproject
# output: "null"
# interpreter: python3
# bootstrap:
#   - mkdir -p /tmp/logs

# environment:
#   APP_ENV: production

# variables:
#   MAILTO: ops@example.com

jobs:
  - kind: command
    task: echo 'hello from cronplan'
    every: 1.day
    at: hour.12
  # - kind: script
  #   task: script.py
  #   path: /web/yourproject/scripts
  #   every: 1.month
`

// Template returns the quickstart template for format.
func Template(format Format) string {
	if format == FormatYAML {
		return TemplateYAML
	}
	return TemplateTOML
}

// WriteTemplate writes the quickstart template to path, in the format its
// extension names. An existing file is only replaced when force is set.
func WriteTemplate(path string, force bool) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: "+constants.MsgQuickstartExists, ErrExists, path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, []byte(Template(format)), 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}
