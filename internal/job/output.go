package job

import "fmt"

const devNull = "/dev/null"

// Output describes where a job's stdout and stderr go.
//
// The string form is used verbatim, except "null" which discards both streams.
// The file form appends to Stdout/Stderr; a nil pointer means the stream is
// discarded and an empty string means it is left alone.
type Output struct {
	Raw    string
	Stdout *string
	Stderr *string
	files  bool
}

// OutputString returns an Output built from a redirection string.
func OutputString(s string) Output {
	return Output{Raw: s}
}

// OutputFiles returns an Output that appends the streams to files.
func OutputFiles(stdout, stderr *string) Output {
	return Output{Stdout: stdout, Stderr: stderr, files: true}
}

// IsZero reports whether no redirection was configured.
func (o Output) IsZero() bool {
	return !o.files && o.Raw == ""
}

// String renders the shell redirection suffix.
func (o Output) String() string {
	if !o.files {
		if o.Raw == "null" {
			return "> /dev/null 2>&1"
		}
		return o.Raw
	}

	stdout, stderr := devNull, devNull
	if o.Stdout != nil {
		stdout = *o.Stdout
	}
	if o.Stderr != nil {
		stderr = *o.Stderr
	}

	switch {
	case stdout == devNull && stderr == devNull:
		return "> /dev/null 2>&1"
	case stdout != "" && stderr != "":
		return fmt.Sprintf(">> %s 2>> %s", stdout, stderr)
	case stdout != "":
		return fmt.Sprintf(">> %s", stdout)
	case stderr != "":
		return fmt.Sprintf("2>> %s", stderr)
	default:
		return ""
	}
}
