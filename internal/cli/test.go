package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/slate-compiler/slate/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // scenario filter (glob pattern on the name)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall conformance result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// String renders the text form of the result.
func (r TestResult) String() string {
	var sb strings.Builder
	for _, s := range r.Scenarios {
		status := "PASS"
		if !s.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&sb, "%s  %s\n", status, s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(&sb, "      %s\n", e)
		}
	}
	fmt.Fprintf(&sb, "%d passed, %d failed, %d total", r.Passed, r.Failed, r.Total)
	return sb.String()
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios against golden files",
		Long: `Run conformance scenarios against golden files.

Each scenario lowers its fixture and compares the dumped tree against
the golden file next to the scenario directory.

Exit codes:
  0  all scenarios passed
  1  one or more scenarios failed
  2  command error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "run only scenarios matching this glob")

	return cmd
}

func runTest(opts *TestOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenarios, err := harness.LoadScenarios(dir)
	if err != nil {
		if ferr := formatter.Error(ErrCodeNotFound, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "loading scenarios", err)
	}
	if len(scenarios) == 0 {
		msg := fmt.Sprintf("no scenarios found in %s", dir)
		if ferr := formatter.Error(ErrCodeNotFound, msg, nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, msg)
	}

	result := TestResult{}
	for _, s := range scenarios {
		if opts.Filter != "" {
			match, err := filepath.Match(opts.Filter, s.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid filter", err)
			}
			if !match {
				continue
			}
		}
		result.Scenarios = append(result.Scenarios, runScenario(opts, s, formatter))
	}
	for _, s := range result.Scenarios {
		result.Total++
		if s.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

func runScenario(opts *TestOptions, s *harness.Scenario, formatter *OutputFormatter) ScenarioResult {
	formatter.VerboseLog("Running scenario: %s", s.Name)

	out, err := harness.Run(s)
	if err != nil {
		return ScenarioResult{Name: s.Name, Errors: []string{err.Error()}}
	}

	goldenPath := s.GoldenPath()
	if opts.Update {
		if err := os.WriteFile(goldenPath, []byte(out.Output), 0o644); err != nil {
			return ScenarioResult{Name: s.Name, Errors: []string{fmt.Sprintf("writing golden: %v", err)}}
		}
		formatter.VerboseLog("Updated %s", goldenPath)
		return ScenarioResult{Name: s.Name, Pass: true}
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		return ScenarioResult{Name: s.Name, Errors: []string{fmt.Sprintf("reading golden: %v", err)}}
	}
	if string(want) != out.Output {
		return ScenarioResult{Name: s.Name, Errors: []string{
			fmt.Sprintf("output mismatch\n      want: %s\n      got:  %s",
				strings.TrimSuffix(string(want), "\n"),
				strings.TrimSuffix(out.Output, "\n")),
		}}
	}
	return ScenarioResult{Name: s.Name, Pass: true}
}
