package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/acalc/cli/cmd"
	"github.com/ardnew/acalc/pkg"
)

// isolate points the user configuration and cache directories into a temp
// directory. It must run before anything in the test binary resolves them.
func isolate(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
}

// stdout captures what fn writes to os.Stdout.
func stdout(t *testing.T, fn func()) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	old := os.Stdout
	os.Stdout = f

	defer func() { os.Stdout = old }()

	fn()

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}

	return string(data)
}

func TestRun(t *testing.T) {
	isolate(t)
	withDefaultLogger(t)

	if err := pkg.MkdirAll(); err != nil {
		t.Fatal(err)
	}

	err := os.WriteFile(pkg.ConfigPath(yamlConfig),
		[]byte("define:\n  a: 2\nlog:\n  level: error\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	exit := func(code int) { t.Errorf("exit(%d) called", code) }

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "default_command_uses_config_bindings",
			args: []string{"a * 3"},
			want: "Infix:    a * 3\n" +
				"Postfix:  a 3 *\n" +
				"Operands: a=2\n" +
				"Result:   6\n",
		},
		{
			name: "flag_overrides_config",
			args: []string{"eval", "-q", "-D", "a=5", "a * 3"},
			want: "15\n",
		},
		{
			name: "check",
			args: []string{"check", "1 + 1"},
			want: "ok  1 + 1\n",
		},
		{
			name:    "check_invalid",
			args:    []string{"check", "1 # 1"},
			wantErr: cmd.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error

			got := stdout(t, func() {
				err = Run(context.Background(), exit, tt.args...)
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Run(%q) error = %v, want %v", tt.args, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("Run(%q) error = %v", tt.args, err)
			}

			if got != tt.want {
				t.Errorf("Run(%q) stdout = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
