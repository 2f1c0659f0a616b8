package job

import (
	"fmt"
	"strings"
)

// Var is a single environment variable.
type Var struct {
	Key   string
	Value string
}

// Env is an ordered list of environment variables.
type Env []Var

// Set replaces the value of key in place, or appends it when absent.
func (e Env) Set(key, value string) Env {
	for i := range e {
		if e[i].Key == key {
			e[i].Value = value
			return e
		}
	}
	return append(e, Var{Key: key, Value: value})
}

// Prefix renders the variables as a shell command prefix: "k1=v1 k2=v2".
func (e Env) Prefix() string {
	pairs := make([]string, 0, len(e))
	for _, v := range e {
		pairs = append(pairs, v.Key+"="+v.Value)
	}
	return strings.Join(pairs, " ")
}

// Lines renders the variables as crontab assignments: VAR="value".
func (e Env) Lines() []string {
	lines := make([]string, 0, len(e))
	for _, v := range e {
		lines = append(lines, fmt.Sprintf("%s=\"%s\"", v.Key, v.Value))
	}
	return lines
}
