// Package crontab keeps one named block of generated lines in sync with the
// system crontab, leaving every other entry untouched.
package crontab

import (
	"fmt"
	"strings"

	"github.com/wasilibs/go-re2"

	"github.com/aatumaykin/cronplan/internal/plan"
)

var newlineRuns = re2.MustCompile(`\n{4,}`)

// Block is the location of a plan block inside crontab text, as inclusive line indexes.
type Block struct {
	Start int
	End   int
	Found bool
}

// Locate finds the block of plan name in text.
//
// The block starts at the first begin sentinel and extends to the last end
// sentinel after it. A begin sentinel without an end (or the reverse) means the
// crontab was edited by hand and is reported as a *SyncError.
func Locate(text, name string) (Block, error) {
	begin, end := plan.BeginMarker(name), plan.EndMarker(name)

	start, stop := -1, -1
	for i, line := range strings.Split(text, "\n") {
		if line == begin && start < 0 {
			start = i
		}
		if line == end {
			stop = i
		}
	}

	switch {
	case start < 0 && stop < 0:
		return Block{}, nil
	case start >= 0 && stop < 0:
		return Block{}, &SyncError{
			Op:     "locate",
			Reason: fmt.Sprintf("crontab is not ended, it contains %q but no %q", begin, end),
		}
	case start < 0:
		return Block{}, &SyncError{
			Op:     "locate",
			Reason: fmt.Sprintf("crontab has no beginning, it contains %q but no %q", end, begin),
		}
	case stop < start:
		return Block{}, &SyncError{
			Op:     "locate",
			Reason: fmt.Sprintf("crontab is not ended, %q is not followed by %q", begin, end),
		}
	}

	return Block{Start: start, End: stop, Found: true}, nil
}

// Merge replaces the block of plan name in current with block, or appends
// block after a blank line when current has none. An empty block removes the
// existing one. The returned bool is false when nothing needs to be written.
func Merge(current, name, block string) (string, bool, error) {
	loc, err := Locate(current, name)
	if err != nil {
		return "", false, err
	}

	if !loc.Found {
		if block == "" {
			return current, false, nil
		}
		return strings.TrimRight(current, "\n") + "\n\n" + block, true, nil
	}

	lines := strings.Split(current, "\n")
	merged := make([]string, 0, len(lines))
	merged = append(merged, lines[:loc.Start]...)
	if block != "" {
		merged = append(merged, strings.TrimSuffix(block, "\n"))
	}
	merged = append(merged, lines[loc.End+1:]...)

	return strings.Join(merged, "\n"), true, nil
}

// Normalize collapses runs of four or more newlines, trims surrounding
// whitespace and terminates non-empty text with a single newline.
func Normalize(content string) string {
	content = newlineRuns.ReplaceAllString(content, "\n\n")
	content = strings.TrimSpace(content)
	if content != "" {
		content += "\n"
	}
	return content
}
