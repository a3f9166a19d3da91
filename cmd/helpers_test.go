package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/webscraper-chat/internal"
	"github.com/iksnae/webscraper-chat/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	sampleSessionID = "session_1718000000000_abc123def"
	emptySessionID  = "session_1717000000000_zzz999yyy"
)

// isolate points every config and data location at a temp dir and clears
// the environment the CLI reads
func isolate(t *testing.T) string {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	t.Setenv("HOME", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{
		"WEBSCRAPER_STORAGE_DRIVER", "WEBSCRAPER_STORAGE_PATH", "WEBSCRAPER_REDIS_ADDR",
		"WEBSCRAPER_REDIS_PASSWORD", "WEBSCRAPER_REDIS_DB", "WEBSCRAPER_LOG_LEVEL",
		"WEBSCRAPER_AI_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL",
	} {
		t.Setenv(k, "")
	}
	return dir
}

// seedState writes the sample document to a fresh SQLite file and returns
// the flags that select it
func seedState(t *testing.T) []string {
	t.Helper()
	dbPath := filepath.Join(isolate(t), "seeded.db")
	testutil.CreateSQLiteFixture(t, dbPath, internal.DefaultStorageKey, testutil.SampleStateJSON)
	return []string{"--storage-path", dbPath}
}

// emptyState returns flags selecting an empty SQLite file
func emptyState(t *testing.T) []string {
	t.Helper()
	return []string{"--storage-path", filepath.Join(isolate(t), "empty.db")}
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the CLI with args and returns what it wrote to stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func with(flags []string, args ...string) []string {
	return append(append([]string{}, args...), flags...)
}

func writeConfig(t *testing.T, path, yaml string) {
	t.Helper()
	testutil.WriteFileFixture(t, path, []byte(yaml))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
