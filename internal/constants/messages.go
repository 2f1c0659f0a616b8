package constants

// Package messages contains all text message constants printed by the cronplan CLI.

// Run messages
const (
	// MsgCrontabNotUpdated is printed after the block in check mode.
	MsgCrontabNotUpdated = "[message] Your crontab file was not updated."

	// MsgCrontabAction reports what a write, update or clear did to the crontab.
	MsgCrontabAction = "[write] crontab file %s\n"

	// MsgBootstrapStart is printed before the bootstrap commands run.
	MsgBootstrapStart = "Starting bootstrap..."

	// MsgBootstrapDone is printed after the bootstrap commands ran.
	MsgBootstrapDone = "Bootstrap finished!"

	// MsgErrorFormat is the prefix for formatting error messages.
	MsgErrorFormat = "Error: %v"
)

// Quickstart messages
const (
	// MsgQuickstartWriting announces the schedule template being written.
	MsgQuickstartWriting = "[add] writing '%s'\n"

	// MsgQuickstartDone is printed after the template was written.
	MsgQuickstartDone = "[done]!"

	// MsgQuickstartExists is the error when the target exists and --force was not given.
	MsgQuickstartExists = "'%s' already exists, use --force to override"
)

// Config messages
const (
	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "❌ Configuration validation failed:\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "✅ Configuration is valid"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"
)

// Error messages
const (
	// MsgErrorLoadingPlan is the error message when a plan file cannot be loaded.
	MsgErrorLoadingPlan = "failed to load plan file %s: %w"

	// MsgErrorUnknownMode is the error message for an unsupported run mode.
	MsgErrorUnknownMode = "unknown run mode %q (expected: check, write, update, clear)"
)
