package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-compiler/slate/internal/ir"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "lower", "testdata/greeting.cue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestLowerStatement(t *testing.T) {
	out, err := execute(t, "lower", "--tier", "modern", "testdata/greeting.cue")
	require.NoError(t, err)
	assert.Contains(t, out, `(const greeting (str "hello"))`)
}

func TestLowerTierFromConfig(t *testing.T) {
	out, err := execute(t, "lower", "-c", "testdata/slate.yaml", "testdata/greeting.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "(const greeting")
}

func TestLowerFlagOverridesConfigTier(t *testing.T) {
	out, err := execute(t, "lower", "-c", "testdata/slate.yaml", "--tier", "legacy", "testdata/greeting.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "(var greeting")
}

func TestLowerLegacyDefaultsWithoutConfig(t *testing.T) {
	out, err := execute(t, "lower", "testdata/greeting.cue")
	require.NoError(t, err)
	assert.Contains(t, out, "(var greeting")
}

func TestLowerJSONOutput(t *testing.T) {
	out, err := execute(t, "--format", "json", "lower", "--tier", "modern", "testdata/greeting.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data["tree"], "(const greeting")
}

func TestLowerLegacyLocalizeReportsModules(t *testing.T) {
	out, err := execute(t, "--format", "json", "lower",
		"-c", "testdata/slate.yaml", "--tier", "legacy", "testdata/localized.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Contains(t, data["tree"], "(prop (id tslib_1) __makeTemplateObject)")
	assert.Equal(t, []interface{}{"tslib"}, data["modules"])
}

func TestLowerCompileErrorExitCode(t *testing.T) {
	out, err := execute(t, "lower", "testdata/broken.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestLowerMissingFile(t *testing.T) {
	out, err := execute(t, "lower", "testdata/absent.cue")
	require.Error(t, err)
	assert.Contains(t, out, "E001")
}

func TestCheckReportsMessageFingerprint(t *testing.T) {
	want := ir.NewLocalizedString(ir.ExprBase{}, ir.MessageMeta{},
		[]string{"Hello, ", "!"}, []string{"name"},
		[]ir.Expression{&ir.ReadVar{Name: "user"}}).MessageID()

	out, err := execute(t, "--format", "json", "check", "testdata/localized.cue")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]interface{})
	messages := data["messages"].([]interface{})
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]interface{})
	assert.Equal(t, want, msg["id"])
	assert.Equal(t, "Hello, {$name}!", msg["text"])
	assert.Equal(t, "login greeting", msg["description"])
}

func TestCheckRejectsMalformedIR(t *testing.T) {
	out, err := execute(t, "check", "testdata/broken.cue")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestConformanceCommand(t *testing.T) {
	out, err := execute(t, "test", "../harness/testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "0 failed")
	assert.NotContains(t, out, "FAIL")
}

func TestConformanceFilter(t *testing.T) {
	out, err := execute(t, "test", "--filter", "localize_*", "../harness/testdata/scenarios")
	require.NoError(t, err)
	assert.Contains(t, out, "localize_modern")
	assert.NotContains(t, out, "declare_greeting")
}

func TestConformanceMissingDirectory(t *testing.T) {
	_, err := execute(t, "test", "testdata/no-such-dir")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadConfigValidation(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Tier)

	cfg, err = LoadConfig("testdata/slate.yaml")
	require.NoError(t, err)
	assert.Equal(t, "modern", cfg.Tier)
	assert.Equal(t, "tslib_1", cfg.Imports["tslib"])

	_, err = LoadConfig("testdata/bad_syntax.yaml")
	require.Error(t, err)

	_, err = LoadConfig("testdata/bad_tier.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium")
}
