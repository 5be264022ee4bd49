package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/bensonlsp/reiki-timer/history"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	reikiPath string
	buildErr  error
)

// BuildReiki builds the reiki binary once and returns its path.
func BuildReiki(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "reiki-bin-")
		if err != nil {
			buildErr = err
			return
		}

		reikiPath = filepath.Join(binDir, "reiki")
		cmd := exec.Command("go", "build", "-o", reikiPath, "./cmd/reiki")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build reiki: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return reikiPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("REIKI", BuildReiki(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	return nil
}

// CmdHistoryID stores the ID of the newest record in a JSON history listing
// in an env var.
func CmdHistoryID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("historyid does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: historyid VAR FILE")
	}

	records := readHistory(ts, args[1])
	if len(records) == 0 {
		ts.Fatalf("history is empty")
	}
	ts.Setenv(args[0], records[0].ID)
}

// CmdHistoryCount checks how many session records a JSON history listing holds.
func CmdHistoryCount(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) != 2 {
		ts.Fatalf("usage: historycount FILE N")
	}

	want, err := strconv.Atoi(args[1])
	if err != nil {
		ts.Fatalf("parse count: %v", err)
	}

	records := readHistory(ts, args[0])
	if (len(records) == want) == neg {
		ts.Fatalf("history has %d records, want %s%d", len(records), negPrefix(neg), want)
	}
}

func readHistory(ts *testscript.TestScript, file string) []history.Record {
	var records []history.Record
	if err := json.Unmarshal([]byte(ts.ReadFile(file)), &records); err != nil {
		ts.Fatalf("parse history list: %v", err)
	}
	return records
}

func negPrefix(neg bool) string {
	if neg {
		return "not "
	}
	return ""
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
