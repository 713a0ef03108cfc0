package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"theorycheck/internal/diagfmt"
	"theorycheck/internal/project"
)

const colorsSource = `namespace Acme
{
    public enum Color { Red, Green }
}
`

const testsSource = `using Acme;
using Xunit;

namespace Acme.Tests
{
    public class ColorTests
    {
        [Theory]
        [InlineData(Color.Red, 1)]
        [InlineData(1, 2)]
        [InlineData(null, 3)]
        public void Paint(Color c, int n) { }
    }
}
`

const cleanSource = `using Xunit;

public class MathTests
{
    [Theory]
    [InlineData(1, 2, 3)]
    [InlineData(-1, 1L, 0)]
    public void Add(int a, long b, double sum) { }
}
`

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func decodeJSON(t *testing.T, s string) diagfmt.DiagnosticsOutput {
	t.Helper()
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, s)
	}
	return out
}

func codes(out diagfmt.DiagnosticsOutput) []string {
	res := make([]string, len(out.Diagnostics))
	for i, d := range out.Diagnostics {
		res[i] = d.Code + "/" + d.Severity
	}
	return res
}

func exitCode(err error) int {
	var ec exitCodeError
	if errors.As(err, &ec) {
		return ec.code
	}
	if err != nil {
		return 2
	}
	return 0
}

func TestCheckReportsErrors(t *testing.T) {
	root := writeTree(t, map[string]string{"Colors.cs": colorsSource, "ColorTests.cs": testsSource})
	stdout, _, err := execute(t, "check", "--ui", "off", "--format", "json", root)
	if got := exitCode(err); got != 1 {
		t.Fatalf("exit = %d (err %v), want 1", got, err)
	}
	got := strings.Join(codes(decodeJSON(t, stdout)), " ")
	if want := "xUnit1010/ERROR xUnit1012/WARNING"; got != want {
		t.Fatalf("codes = %q, want %q", got, want)
	}
}

func TestDefaultParameterValueIsShortfall(t *testing.T) {
	root := writeTree(t, map[string]string{"T.cs": `public class Tests
{
    [Theory, InlineData(1)]
    public void M(int a, int b = 5) { }
}`})
	stdout, _, err := execute(t, "check", "--ui", "off", "--format", "json", root)
	if got := exitCode(err); got != 1 {
		t.Fatalf("exit = %d (err %v), want 1", got, err)
	}
	if got := strings.Join(codes(decodeJSON(t, stdout)), " "); got != "xUnit1009/ERROR" {
		t.Fatalf("codes = %q, want xUnit1009/ERROR", got)
	}
	if long := newRootCmd().Long; strings.Contains(long, "optional parameters") {
		t.Fatalf("help claims optional parameters are handled:\n%s", long)
	}
}

func TestCheckCleanTree(t *testing.T) {
	root := writeTree(t, map[string]string{"MathTests.cs": cleanSource})
	stdout, stderr, err := execute(t, "check", "--ui", "off", "--color", "off", root)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, stderr)
	}
	if stdout != "" {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
	if !strings.Contains(stderr, "checked 1 files, 2 InlineData rows: 0 errors, 0 warnings") {
		t.Fatalf("summary = %q", stderr)
	}
}

func TestCheckWarningFlags(t *testing.T) {
	root := writeTree(t, map[string]string{"Colors.cs": colorsSource, "ColorTests.cs": testsSource})

	stdout, _, _ := execute(t, "check", "--ui", "off", "--format", "json", "--no-warnings", root)
	if got := strings.Join(codes(decodeJSON(t, stdout)), " "); got != "xUnit1010/ERROR" {
		t.Fatalf("--no-warnings codes = %q", got)
	}

	stdout, _, _ = execute(t, "check", "--ui", "off", "--format", "json", "--warnings-as-errors", root)
	if got := strings.Join(codes(decodeJSON(t, stdout)), " "); got != "xUnit1010/ERROR xUnit1012/ERROR" {
		t.Fatalf("--warnings-as-errors codes = %q", got)
	}

	_, _, err := execute(t, "check", "--ui", "off", "--no-warnings", "--warnings-as-errors", root)
	if err == nil || exitCode(err) != 2 {
		t.Fatalf("conflicting flags accepted: %v", err)
	}
}

func TestCheckManifestSettings(t *testing.T) {
	root := writeTree(t, map[string]string{
		project.ManifestName: "[check]\nwarnings-as-errors = true\n\n[[types.enum]]\nname = \"Acme.Color\"\n",
		"ColorTests.cs":      testsSource,
	})

	stdout, _, _ := execute(t, "check", "--ui", "off", "--format", "json", root)
	if got := strings.Join(codes(decodeJSON(t, stdout)), " "); got != "xUnit1010/ERROR xUnit1012/ERROR" {
		t.Fatalf("manifest codes = %q", got)
	}

	// флаг командной строки важнее манифеста
	stdout, _, _ = execute(t, "check", "--ui", "off", "--format", "json", "--warnings-as-errors=false", root)
	if got := strings.Join(codes(decodeJSON(t, stdout)), " "); got != "xUnit1010/ERROR xUnit1012/WARNING" {
		t.Fatalf("override codes = %q", got)
	}
}

func TestCheckInvalidManifest(t *testing.T) {
	root := writeTree(t, map[string]string{
		project.ManifestName: "[check]\nmax-diagnostics = -1\n",
		"ColorTests.cs":      testsSource,
	})
	_, stderr, err := execute(t, "check", "--ui", "off", "--color", "off", root)
	if !errors.Is(err, project.ErrInvalidManifest) {
		t.Fatalf("err = %v, want ErrInvalidManifest", err)
	}
	if !strings.Contains(stderr, "PRJ5002") {
		t.Fatalf("stderr misses PRJ5002:\n%s", stderr)
	}
}

func TestCheckNoSources(t *testing.T) {
	root := writeTree(t, map[string]string{"readme.md": "nothing here"})
	_, _, err := execute(t, "check", "--ui", "off", root)
	if err == nil || !strings.Contains(err.Error(), "IO4002") {
		t.Fatalf("err = %v, want IO4002", err)
	}
}

func TestCheckSarif(t *testing.T) {
	root := writeTree(t, map[string]string{"Colors.cs": colorsSource, "ColorTests.cs": testsSource})
	stdout, _, _ := execute(t, "check", "--ui", "off", "--format", "sarif", root)
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal([]byte(stdout), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 || len(log.Runs[0].Results) != 2 {
		t.Fatalf("sarif = %+v", log)
	}
}

func TestExplain(t *testing.T) {
	stdout, _, err := execute(t, "explain", "xunit1012")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "xUnit1012: ") {
		t.Fatalf("explain output = %q", stdout)
	}

	if _, _, err := execute(t, "explain", "XYZ1"); err == nil {
		t.Fatal("unknown code accepted")
	}

	stdout, _, err = execute(t, "explain", "--list")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"xUnit1009", "xUnit1010", "xUnit1011", "xUnit1012", "SYN3005", "PRJ5001"} {
		if !strings.Contains(stdout, id) {
			t.Fatalf("--list misses %s:\n%s", id, stdout)
		}
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "suite")
	if _, _, err := execute(t, "init", "--name", "suite", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `name = "suite"`) {
		t.Fatalf("manifest:\n%s", data)
	}
	if _, _, err := execute(t, "init", dir); err == nil {
		t.Fatal("second init must fail without --force")
	}
	if _, _, err := execute(t, "init", "--force", dir); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := execute(t, "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "theorycheck" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestReadModes(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want uiMode
		ok   bool
	}{
		{"", uiModeAuto, true},
		{"ON", uiModeOn, true},
		{" off ", uiModeOff, true},
		{"maybe", "", false},
	} {
		got, err := readUIMode(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if _, err := readFormat("xml"); err == nil {
		t.Fatal("readFormat accepted xml")
	}
	if shouldUseTUI(uiModeOff, formatPretty) || !shouldUseTUI(uiModeOn, formatJSON) {
		t.Fatal("explicit ui modes ignored")
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("aaa bbb ccc ddd", 7)
	if want := "aaa bbb\nccc ddd"; got != want {
		t.Fatalf("wrapText = %q, want %q", got, want)
	}
}
