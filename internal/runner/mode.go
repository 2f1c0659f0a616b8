package runner

import (
	"fmt"
	"strings"

	"github.com/aatumaykin/cronplan/internal/constants"
)

// Mode selects what a run does with the rendered block.
type Mode string

const (
	// ModeCheck prints the block and leaves the crontab alone
	ModeCheck Mode = "check"
	// ModeWrite replaces the whole crontab with the block
	ModeWrite Mode = "write"
	// ModeUpdate inserts or replaces the plan's block
	ModeUpdate Mode = "update"
	// ModeClear removes the plan's block
	ModeClear Mode = "clear"
)

// Modes lists every run mode in help order.
var Modes = []Mode{ModeCheck, ModeWrite, ModeUpdate, ModeClear}

// ParseMode converts a mode name; the empty string selects ModeCheck.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeCheck, nil
	case ModeCheck, ModeWrite, ModeUpdate, ModeClear:
		return m, nil
	default:
		return "", fmt.Errorf(constants.MsgErrorUnknownMode, s)
	}
}

// Modifies reports whether the mode installs a crontab.
func (m Mode) Modifies() bool {
	return m != ModeCheck
}
