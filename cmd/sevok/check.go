package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/virtsec/sevok/internal/catalog"
	"github.com/virtsec/sevok/internal/engine"
	"github.com/virtsec/sevok/internal/hwcaps"
	"github.com/virtsec/sevok/internal/logger"
	"github.com/virtsec/sevok/internal/model"
	"github.com/virtsec/sevok/internal/report"
	sevokerrors "github.com/virtsec/sevok/pkg/errors"
)

type checkOptions struct {
	Generation string
	Quiet      bool
	JSON       bool
	Verbose    bool
}

var checkCmdRunner = runCheck

func newCheckCmd(root *rootFlags) *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [sev|es]",
		Short: "Probe the host for SEV support",
		Long: `Check runs the hardware capability probes tier by tier, then the
OS-level checks, and reports a pass/fail/skip line per probe. A failed tier
skips everything that depends on it. Without a generation argument the full
SEV + Encrypted State (es) probe set runs. Exit code 0 means every executed
probe passed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Generation = args[0]
			}
			opts.Verbose = root.verbose

			return checkCmdRunner(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress per-probe output")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit a JSON summary instead of streaming lines")

	return cmd
}

func runCheck(opts checkOptions) error {
	variant, err := catalog.ParseVariant(opts.Generation)
	if err != nil {
		return err
	}

	level := "error"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Pretty: true})
	if err != nil {
		return err
	}

	cat := catalog.Build(variant, hwcaps.NewHostSource())

	// Quiet and JSON modes swap the sink, never the execution: the same
	// probes run and the aggregate is unchanged.
	var sink engine.Sink
	if opts.Quiet || opts.JSON {
		sink = report.NewNoop()
	} else {
		sink = report.NewTerminal(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	}

	log.WithFields(map[string]any{
		"generation": string(variant),
		"probes":     cat.Len(),
	}).Debug("starting diagnostic run")

	summary := engine.NewRunner(log).Run(cat, sink)

	if opts.JSON && !opts.Quiet {
		printJSONSummary(os.Stdout, variant, summary)
	}

	log.WithFields(map[string]any{
		"total":    summary.Total,
		"passed":   summary.Passed,
		"failed":   summary.Failed,
		"skipped":  summary.Skipped,
		"duration": summary.Duration.String(),
	}).Debug("diagnostic run complete")

	if !summary.AllPassed() {
		return sevokerrors.NewDiagnosticError(summary.Failed)
	}
	return nil
}

func printJSONSummary(w io.Writer, variant catalog.Variant, summary *model.RunSummary) {
	type jsonResult struct {
		Name      string  `json:"name"`
		Status    string  `json:"status"`
		Message   string  `json:"message"`
		Tier      int     `json:"tier"`
		Duration  float64 `json:"duration_seconds"`
		Timestamp string  `json:"timestamp"`
	}

	type jsonSummary struct {
		Generation string       `json:"generation"`
		Total      int          `json:"total"`
		Passed     int          `json:"passed"`
		Failed     int          `json:"failed"`
		Skipped    int          `json:"skipped"`
		Duration   float64      `json:"duration_seconds"`
		Results    []jsonResult `json:"results"`
	}

	out := jsonSummary{
		Generation: string(variant),
		Total:      summary.Total,
		Passed:     summary.Passed,
		Failed:     summary.Failed,
		Skipped:    summary.Skipped,
		Duration:   summary.Duration.Seconds(),
		Results:    make([]jsonResult, len(summary.Results)),
	}
	for i, res := range summary.Results {
		out.Results[i] = jsonResult{
			Name:      res.Name,
			Status:    string(res.Status),
			Message:   res.Message,
			Tier:      res.Tier,
			Duration:  res.Duration.Seconds(),
			Timestamp: res.Timestamp.Format(time.RFC3339),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(out)
}
