package constants

import (
	"regexp"
	"testing"
)

func TestDefaultConstants(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "DefaultVersion", value: DefaultVersion},
		{name: "DefaultBuildTime", value: DefaultBuildTime},
		{name: "DefaultGitCommit", value: DefaultGitCommit},
		{name: "DefaultGoVersion", value: DefaultGoVersion},
		{name: "MetricsNamespace", value: MetricsNamespace},
		{name: "DefaultPlanName", value: DefaultPlanName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value == "" {
				t.Errorf("%s should not be empty", tt.name)
			}
		})
	}
}

func TestDefaultVersion(t *testing.T) {
	// Format: MAJOR.MINOR.PATCH-PRERELEASE (e.g., "0.1.0-dev")
	matched, err := regexp.MatchString(`^\d+\.\d+\.\d+(-[\w\.-]+)?$`, DefaultVersion)
	if err != nil {
		t.Fatalf("Failed to compile version pattern: %v", err)
	}
	if !matched {
		t.Errorf("DefaultVersion = %s, should follow semantic versioning pattern", DefaultVersion)
	}
}

func TestMetricsNamespace(t *testing.T) {
	// Prometheus metric names: [a-zA-Z_:][a-zA-Z0-9_:]*
	if !regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`).MatchString(MetricsNamespace) {
		t.Errorf("MetricsNamespace = %s is not a valid metric prefix", MetricsNamespace)
	}
}
