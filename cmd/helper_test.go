package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// setup points the settings to a fresh journal in a temporary directory and
// captures the printed reports. It returns the journal path and the output.
func setup(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	journal := filepath.Join(t.TempDir(), "journal.jsonl")

	oldSettings, oldStdout, oldRaw := settings, stdout, *rawOutput
	t.Cleanup(func() { settings, stdout, *rawOutput = oldSettings, oldStdout, oldRaw })

	var out bytes.Buffer
	settings = Settings{Ledger: journal, Currency: "USD"}
	stdout = &out
	*rawOutput = true
	return journal, &out
}

// run parses args for c and executes it.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("parsing %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q): %v", path, err)
	}
	return string(b)
}
