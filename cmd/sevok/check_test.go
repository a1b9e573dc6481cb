package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/virtsec/sevok/internal/catalog"
	"github.com/virtsec/sevok/internal/model"
	sevokerrors "github.com/virtsec/sevok/pkg/errors"
)

func TestCheckCmdForwardsOptions(t *testing.T) {
	orig := checkCmdRunner
	defer func() { checkCmdRunner = orig }()

	var captured checkOptions
	checkCmdRunner = func(opts checkOptions) error {
		captured = opts
		return nil
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"check", "sev", "--quiet", "--json", "--verbose"})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "sev", captured.Generation)
	require.True(t, captured.Quiet)
	require.True(t, captured.JSON)
	require.True(t, captured.Verbose)
}

func TestCheckCmdDefaultsToNoGeneration(t *testing.T) {
	orig := checkCmdRunner
	defer func() { checkCmdRunner = orig }()

	var captured checkOptions
	checkCmdRunner = func(opts checkOptions) error {
		captured = opts
		return nil
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"check"})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "", captured.Generation)
	require.False(t, captured.Quiet)
}

func TestCheckCmdRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"check", "sev", "es"})
	require.Error(t, cmd.Execute())
}

func TestRunCheckRejectsUnknownGeneration(t *testing.T) {
	t.Parallel()

	err := runCheck(checkOptions{Generation: "tdx", Quiet: true})
	require.Error(t, err)

	var validationErr *sevokerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPrintJSONSummary(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	summary := &model.RunSummary{Duration: 40 * time.Millisecond}
	summary.Record(model.ProbeResult{Name: "AMD CPU", Status: model.StatusPass, Message: "AMD CPU", Tier: 1, Timestamp: now})
	summary.Record(model.ProbeResult{Name: "Microcode support", Status: model.StatusFail, Message: "Microcode support: CPU model \"x\" is not an EPYC part", Tier: 2, Timestamp: now})
	summary.Record(model.ProbeResult{Name: "AMD SEV", Status: model.StatusSkip, Message: "AMD SEV", Tier: 3, Timestamp: now})

	buf := &bytes.Buffer{}
	printJSONSummary(buf, catalog.Es, summary)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "es", decoded["generation"])
	require.Equal(t, float64(3), decoded["total"])
	require.Equal(t, float64(1), decoded["failed"])
	require.Equal(t, float64(1), decoded["skipped"])

	results := decoded["results"].([]any)
	require.Len(t, results, 3)
	first := results[0].(map[string]any)
	require.Equal(t, "AMD CPU", first["name"])
	require.Equal(t, "pass", first["status"])
	require.Equal(t, float64(1), first["tier"])
}
