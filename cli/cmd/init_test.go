package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type levelName string

// initCLI is a stand-in for the top-level flags written by Init.
type initCLI struct {
	Level  levelName          `default:"warn"`
	Caller bool               `default:"false"`
	Define map[string]float64 `short:"D"`
	Empty  string            
	Pprof  string             `default:"cpu"`
}

func initContext(t *testing.T, path string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: path})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), ktx)

	return WithOutput(ctx, &bytes.Buffer{}, &bytes.Buffer{})
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		existed bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, existed: true},
		{name: "fail_without_force", existed: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.existed {
				err := os.WriteFile(confPath, []byte("existing: true\n"), 0o644)
				if err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--caller", "-D", "a=1.5")

			err := (&Init{Force: tt.force}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
				}

				content, _ := os.ReadFile(confPath)
				if string(content) != "existing: true\n" {
					t.Error("existing file was modified")
				}

				return
			}

			if err != nil {
				t.Fatalf("Init.Run() error = %v", err)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			want := map[string]any{
				"level":  "warn",
				"caller": true,
				"define": map[string]any{"a": 1.5},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}

			// Keys are written in sorted order.
			if i, j := strings.Index(string(content), "caller"),
				strings.Index(string(content), "level"); i > j {
				t.Errorf("keys not sorted:\n%s", content)
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
		ok   bool
	}{
		{"nil", nil, nil, false},
		{"bool_false", false, false, true},
		{"string", "text", "text", true},
		{"named_string", levelName("debug"), "debug", true},
		{"empty_string", "", nil, false},
		{"int", 4, 4, true},
		{"empty_slice", []string{}, nil, false},
		{"slice", []string{"a"}, []string{"a"}, true},
		{"empty_map", map[string]float64{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := flagValue(tt.in)
			if ok != tt.ok {
				t.Fatalf("flagValue(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("flagValue(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
