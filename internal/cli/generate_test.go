package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/splice/internal/testutil"
)

// executeGenerate runs the generate command and returns stdout and stderr.
func executeGenerate(t *testing.T, format string, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewGenerateCommand(&RootOptions{Format: format, LogFormat: "text"})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeGreeting writes a statement-list template and a scenario binding its
// marker to text, returning the scenario path.
func writeGreeting(t *testing.T, dir, fragmentText string) string {
	t.Helper()

	testutil.WriteFile(t, dir, "greeting.go.tmpl", "x := 1\n\"{{greeting}}\"\n")
	text, err := json.Marshal(fragmentText)
	require.NoError(t, err)
	return testutil.WriteFile(t, dir, "job.json",
		`{"template": "greeting.go.tmpl", "fragments": {"greeting": {"text": `+string(text)+`}}}`)
}

func TestGenerate_EnergyPlusGolden(t *testing.T) {
	for _, scenarioFile := range []string{"energyplus.yaml", "energyplus.cue"} {
		t.Run(scenarioFile, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "controller.go")

			stdout, _, err := executeGenerate(t, "text",
				filepath.Join("testdata", "energyplus", scenarioFile), "-o", output)
			require.NoError(t, err)
			assert.Contains(t, stdout, "✓ Generated "+output+" (7 replacement(s))")

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, "energyplus", []byte(testutil.ReadFile(t, output)))
		})
	}
}

func TestGenerate_Stdout(t *testing.T) {
	path := writeGreeting(t, t.TempDir(), `fmt.Println("hi")`)

	stdout, stderr, err := executeGenerate(t, "text", path)
	require.NoError(t, err)

	// Generated text alone on stdout, summary on stderr
	assert.Equal(t, "x := 1\nfmt.Println(\"hi\")\n", stdout)
	assert.Contains(t, stderr, "✓ Generated <stdout> (1 replacement(s))")
}

func TestGenerate_JSON(t *testing.T) {
	path := writeGreeting(t, t.TempDir(), `fmt.Println("hi")`)

	stdout, _, err := executeGenerate(t, "json", path)
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "statements", resp.Data.Kind)
	assert.Equal(t, []string{"greeting"}, resp.Data.Markers)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, "x := 1\nfmt.Println(\"hi\")\n", resp.Data.Text)
	require.Len(t, resp.Data.Applied, 1)
	assert.Equal(t, 2, resp.Data.Applied[0].Line)
}

func TestGenerate_InvalidOutputWarns(t *testing.T) {
	dir := t.TempDir()
	path := writeGreeting(t, dir, `fmt.Println('hi')`)
	output := filepath.Join(dir, "out.go")

	stdout, stderr, err := executeGenerate(t, "text", path, "-o", output)
	require.NoError(t, err)

	// Invalid output is still written
	assert.Equal(t, "x := 1\nfmt.Println('hi')\n", testutil.ReadFile(t, output))
	assert.Contains(t, stdout, "does not parse: 2:")
	assert.Contains(t, stderr, "generated text does not parse")
}

func TestGenerate_StrictBlocksInvalidOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeGreeting(t, dir, `fmt.Println('hi')`)
	output := filepath.Join(dir, "out.go")

	stdout, _, err := executeGenerate(t, "text", path, "-o", output, "--strict")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeOutputInvalid)
	assert.Contains(t, stdout, "Error [E010]")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "strict mode must not write invalid output")
}

func TestGenerate_FormatsValidOutput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "t.go.tmpl", "package p\n\nfunc f() {\n\t\"{{body}}\"\n}\n")
	path := testutil.WriteFile(t, dir, "job.yaml", `
template: t.go.tmpl
format: true
fragments:
  body:
    text: "x:=1;_=x"
`)

	stdout, _, err := executeGenerate(t, "text", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "x := 1")
}

func TestGenerate_Journal(t *testing.T) {
	dir := t.TempDir()
	path := writeGreeting(t, dir, `fmt.Println("hi")`)
	db := filepath.Join(dir, "splice.db")

	stdout, _, err := executeGenerate(t, "json", path, "--journal", db)
	require.NoError(t, err)

	var resp struct {
		Data GenerateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.NotEmpty(t, resp.Data.RunID)

	out := &bytes.Buffer{}
	cmd := NewHistoryCommand(&RootOptions{Format: "text", LogFormat: "text"})
	cmd.SetOut(out)
	cmd.SetArgs([]string{"--journal", db})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), resp.Data.RunID)
	assert.Contains(t, out.String(), "job.json -> <stdout>")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) []string
		code  string
	}{
		{
			name: "scenario not found",
			setup: func(t *testing.T, dir string) []string {
				return []string{filepath.Join(dir, "missing.yaml")}
			},
			code: ErrCodeConfigNotFound,
		},
		{
			name: "scenario invalid",
			setup: func(t *testing.T, dir string) []string {
				return []string{testutil.WriteFile(t, dir, "job.yaml", "fragments: {}\n")}
			},
			code: ErrCodeConfigInvalid,
		},
		{
			name: "template missing",
			setup: func(t *testing.T, dir string) []string {
				return []string{testutil.WriteFile(t, dir, "job.yaml", "template: nowhere.go.tmpl\n")}
			},
			code: ErrCodeTemplateMissing,
		},
		{
			name: "template does not parse",
			setup: func(t *testing.T, dir string) []string {
				testutil.WriteFile(t, dir, "bad.go.tmpl", "func (\n")
				return []string{testutil.WriteFile(t, dir, "job.yaml", "template: bad.go.tmpl\n")}
			},
			code: ErrCodeTemplateParse,
		},
		{
			name: "unknown generator",
			setup: func(t *testing.T, dir string) []string {
				testutil.WriteFile(t, dir, "t.go.tmpl", "\"{{x}}\"\n")
				return []string{testutil.WriteFile(t, dir, "job.yaml",
					"template: t.go.tmpl\nfragments:\n  x:\n    generator: nope\n")}
			},
			code: ErrCodeUnknownGenerator,
		},
		{
			name: "generator failure",
			setup: func(t *testing.T, dir string) []string {
				testutil.WriteFile(t, dir, "t.go.tmpl", "\"{{initQueue}}\"\n")
				return []string{testutil.WriteFile(t, dir, "job.yaml",
					"template: t.go.tmpl\nenergyplus:\n  queues:\n    name: not-a-list\n")}
			},
			code: ErrCodeFragmentFailed,
		},
		{
			name: "write failure",
			setup: func(t *testing.T, dir string) []string {
				path := writeGreeting(t, dir, "y := 2")
				blocker := testutil.WriteFile(t, dir, "blocker", "")
				return []string{path, "-o", filepath.Join(blocker, "out.go")}
			},
			code: ErrCodeWriteFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.setup(t, t.TempDir())

			stdout, _, err := executeGenerate(t, "json", args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
