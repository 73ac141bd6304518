package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/slate-compiler/slate/internal/compiler"
	"github.com/slate-compiler/slate/internal/harness"
	"github.com/slate-compiler/slate/internal/jsast"
	"github.com/slate-compiler/slate/internal/translate"
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	*RootOptions
	Tier   string // "legacy" | "modern"; empty defers to config
	Kind   string // "statement" | "expression"
	Config string // optional slate.yaml path
	Output string // output file path
}

// LowerResult is the success payload of the lower command.
type LowerResult struct {
	Tree    string   `json:"tree"`
	Modules []string `json:"modules,omitempty"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LowerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lower <ir-file>",
		Short: "Lower a CUE IR document to an output syntax tree",
		Long: `Lower a CUE IR document to an output syntax tree.

The document is compiled to IR, lowered at the selected capability tier,
and printed in the stable dump format. External references resolve
through the import table from the config file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tier, "tier", "", "capability tier (legacy|modern)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "statement", "root node kind (statement|expression)")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to slate.yaml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runLower(opts *LowerOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := LoadConfig(opts.Config)
	if err != nil {
		if ferr := formatter.Error(ErrCodeGeneric, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}
	tier, err := cfg.ResolveTier(opts.Tier)
	if err != nil {
		if ferr := formatter.Error(ErrCodeGeneric, err.Error(), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	node, resolver, err := lowerFile(path, opts.Kind, tier, cfg.Imports)
	if err != nil {
		code := ErrCodeLower
		var cerr *compiler.CompileError
		if os.IsNotExist(err) {
			code = ErrCodeNotFound
		} else if errors.As(err, &cerr) {
			code = ErrCodeCompile
		}
		if ferr := formatter.Error(code, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "lowering failed", err)
	}

	result := LowerResult{Tree: jsast.Dump(node), Modules: resolver.Modules()}
	formatter.VerboseLog("Lowered %s at %s tier", path, tier)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Tree+"\n"), 0o644); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		formatter.VerboseLog("Wrote %s", opts.Output)
		return nil
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(result.Tree)
}

// lowerFile compiles path to IR and lowers the root node.
func lowerFile(path, kind string, tier translate.Tier, imports map[string]string) (jsast.Node, *harness.StaticResolver, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	ctx := cuecontext.New()
	v := ctx.CompileString(string(src), cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	resolver := harness.NewStaticResolver(imports)
	c := compiler.New()

	switch kind {
	case "expression":
		expr, err := c.CompileExpression(v)
		if err != nil {
			return nil, nil, err
		}
		node, err := translate.TranslateExpression(expr, resolver, nopRecorder{}, tier)
		if err != nil {
			return nil, nil, err
		}
		return node, resolver, nil
	case "statement":
		stmt, err := c.CompileStatement(v)
		if err != nil {
			return nil, nil, err
		}
		node, err := translate.TranslateStatement(stmt, resolver, nopRecorder{}, tier)
		if err != nil {
			return nil, nil, err
		}
		return node, resolver, nil
	default:
		return nil, nil, fmt.Errorf("unknown kind %q: must be statement or expression", kind)
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordUsedIdentifier(*jsast.Identifier) {}
