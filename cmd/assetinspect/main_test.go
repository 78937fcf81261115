package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// These tests touch the package-level flag variables and must not run in
// parallel.

func resetFlags() {
	logLevel, logFormat, debug, maxSize, versionsFile = "", "", false, 0, ""
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil || cfg != (Config{}) {
		t.Fatalf("missing file: %+v, %v", cfg, err)
	}

	if _, err := LoadConfig(writeFile(t, "bad.yaml", []byte("log_level: [\n"))); err == nil {
		t.Fatal("expected error for malformed config")
	}

	path := writeFile(t, "config.yaml", []byte("log_level: debug\nlog_format: json\nmax_size: 4096\nversions_file: /tmp/v.yaml\n"))
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.MaxSize == nil || *cfg.MaxSize != 4096 || cfg.VersionsFile != "/tmp/v.yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestApplyConfigKeepsExplicitFlags(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	size := int64(10)
	cfg := Config{LogLevel: "debug", LogFormat: "json", MaxSize: &size, VersionsFile: "v.yaml"}
	cmd := &cli.Command{
		Name:  "assetinspect",
		Flags: loggingFlags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			applyConfig(c, cfg)
			return nil
		},
	}
	if err := cmd.Run(context.Background(), []string{"assetinspect", "--log-level", "warn", "--max-size", "99"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if logLevel != "warn" || maxSize != 99 {
		t.Fatalf("explicit flags overridden: level=%q max=%d", logLevel, maxSize)
	}
	if logFormat != "json" || versionsFile != "v.yaml" {
		t.Fatalf("config not applied: format=%q versions=%q", logFormat, versionsFile)
	}
}

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:     "assetinspect",
		Writer:   &out,
		Flags:    loggingFlags(),
		Commands: []*cli.Command{exprCmd(), dnaCmd(), versionsCmd()},
	}
	if err := app.Run(context.Background(), append([]string{"assetinspect"}, args...)); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func TestExprCommand(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	body := []byte{0xff, 0xff, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0, 0x00, 0x00, 0x80, 0x3F}
	path := writeFile(t, "expr.bin", body)

	out := runApp(t, "expr", "-f", path, "--offset", "2", "--mode", "expression", "--indent=false")
	if !strings.Contains(out, `"result":[{"Op":"Negate"},{"V":1}]`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestExprCommandAssetWithVersions(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	// One map entry: name 0 -> [F[5]].
	body := []byte{
		1, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		1, 0, 0, 0,
		2, 0, 0, 0, 5, 0, 0, 0,
	}
	path := writeFile(t, "asset.bin", body)
	names := writeFile(t, "names.yaml", []byte("- JawOpen\n"))
	versions := writeFile(t, "versions.yaml", []byte("versions:\n  CurveExpression: 1\n"))

	out := runApp(t, "--versions", versions, "expr", "-f", path, "--names", names, "--indent=false")
	if !strings.Contains(out, `"expressionMap":{"JawOpen":[{"F":5}]}`) {
		t.Fatalf("unexpected output: %s", out)
	}
	if !strings.Contains(out, `"ordinal":1`) {
		t.Fatalf("version not resolved from file: %s", out)
	}
}

func TestDNACommandMissingSignature(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	path := writeFile(t, "rig.bin", []byte("not a rig"))
	out := runApp(t, "dna", "-f", path, "--indent=false")
	if !strings.Contains(out, `"result":null`) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestVersionsCommand(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	versions := writeFile(t, "versions.yaml", []byte("versions:\n  CurveExpression: 1000\n"))
	out := runApp(t, "--versions", versions, "versions", "--indent=false")
	for _, want := range []string{`"name":"CurveExpression"`, `"ordinal":1000`, `"ahead":true`, `"name":"DNAAsset"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}
