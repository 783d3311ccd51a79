package testsupport

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/duchess/storage"
)

var (
	buildOnce   sync.Once
	duchessPath string
	buildErr    error
)

// BuildDuchess builds the duchess binary once and returns its path.
func BuildDuchess(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "duchess-bin-")
		if err != nil {
			buildErr = err
			return
		}

		duchessPath = filepath.Join(binDir, "duchess")
		cmd := exec.Command("go", "build", "-o", duchessPath, "./cmd/duchess")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build duchess: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return duchessPath
}

// SetupScriptEnv configures common environment variables for testscript.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("DUCHESS", BuildDuchess(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("DUCHESS_CONFIG", "")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTaskCount loads a snapshot file and checks how many active and
// archived tasks it holds.
func CmdTaskCount(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskcount does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskcount FILE ACTIVE ARCHIVED")
	}

	file, err := storage.Open(ts.MkAbs(args[0]))
	if err != nil {
		ts.Fatalf("open %s: %v", args[0], err)
	}
	active, archive, err := file.Load()
	if err != nil {
		ts.Fatalf("load %s: %v", args[0], err)
	}

	got := fmt.Sprintf("%d %d", len(active), len(archive))
	want := args[1] + " " + args[2]
	if got != want {
		ts.Fatalf("task counts: got %s (active archived), want %s", got, want)
	}
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
