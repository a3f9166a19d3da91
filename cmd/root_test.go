package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantOut: "dev (commit: unknown",
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantOut: "webscraper-chat",
			wantErr: false,
		},
		{
			name:    "nonexistent command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			args:    []string{"--provider", "claude", "list"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			args:    []string{"--log-level", "chatty", "list"},
			wantErr: true,
		},
		{
			name:    "unknown storage driver",
			args:    []string{"--storage-driver", "etcd", "list"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantOut != "" && !strings.Contains(out, tt.wantOut) {
				t.Errorf("output should contain %q, got:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	dir := isolate(t)
	_, err := executeCommand(t, "--config", filepath.Join(dir, "nope.yaml"), "list")
	if err == nil {
		t.Error("an explicit missing config file should fail")
	}
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "from-config.db")
	writeConfig(t, cfgPath, "storage:\n  path: "+dbPath+"\n")

	mustExecute(t, "--config", cfgPath, "new", "From config")
	out := mustExecute(t, "--storage-path", dbPath, "list")
	if !strings.Contains(out, "From config") {
		t.Errorf("session should be stored at the configured path, list:\n%s", out)
	}
}

func TestRootCommand_MetricsTextfile(t *testing.T) {
	flags := emptyState(t)
	metricsPath := filepath.Join(t.TempDir(), "webscraper.prom")

	mustExecute(t, with(flags, "--metrics-textfile", metricsPath, "new")...)
	data := readFile(t, metricsPath)
	if !strings.Contains(data, "createSession") {
		t.Errorf("metrics textfile should count createSession, got:\n%s", data)
	}
}
