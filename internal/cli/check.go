package cli

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/slate-compiler/slate/internal/compiler"
	"github.com/slate-compiler/slate/internal/ir"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Kind string // "statement" | "expression"
}

// MessageReport describes one localized message found during a check.
type MessageReport struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description,omitempty"`
	Meaning     string `json:"meaning,omitempty"`
}

// CheckResult is the success payload of the check command.
type CheckResult struct {
	File     string          `json:"file"`
	Messages []MessageReport `json:"messages,omitempty"`
}

// String renders the text form of the result.
func (r CheckResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: ok", r.File)
	for _, m := range r.Messages {
		fmt.Fprintf(&sb, "\n  message %s: %q", m.ID, m.Text)
	}
	return sb.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <ir-file>",
		Short: "Validate an IR document and report its localized messages",
		Long: `Validate that a CUE IR document compiles to well-formed IR.

Localized messages found in the tree are reported with their stable
message fingerprints, which downstream translation tooling keys on.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "statement", "root node kind (statement|expression)")

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if ferr := formatter.Error(ErrCodeNotFound, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "reading input", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileString(string(src), cue.Filename(path))
	if err := v.Err(); err != nil {
		if ferr := formatter.Error(ErrCodeCompile, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "invalid CUE", err)
	}

	c := compiler.New()
	var messages []MessageReport
	switch opts.Kind {
	case "expression":
		expr, err := c.CompileExpression(v)
		if err != nil {
			if ferr := formatter.Error(ErrCodeCompile, err.Error(), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitFailure, "invalid IR", err)
		}
		messages = collectMessages(nil, expr)
	case "statement":
		stmt, err := c.CompileStatement(v)
		if err != nil {
			if ferr := formatter.Error(ErrCodeCompile, err.Error(), nil); ferr != nil {
				return ferr
			}
			return WrapExitError(ExitFailure, "invalid IR", err)
		}
		messages = collectStatementMessages(nil, stmt)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown kind %q", opts.Kind))
	}

	return formatter.Success(CheckResult{File: path, Messages: messages})
}

// collectStatementMessages walks a statement tree gathering localized
// message reports in source order.
func collectStatementMessages(acc []MessageReport, stmt ir.Statement) []MessageReport {
	switch s := stmt.(type) {
	case *ir.DeclareVar:
		if s.Value != nil {
			acc = collectMessages(acc, s.Value)
		}
	case *ir.DeclareFunction:
		for _, child := range s.Statements {
			acc = collectStatementMessages(acc, child)
		}
	case *ir.ExpressionStatement:
		acc = collectMessages(acc, s.Expr)
	case *ir.Return:
		acc = collectMessages(acc, s.Value)
	case *ir.Throw:
		acc = collectMessages(acc, s.Error)
	case *ir.If:
		acc = collectMessages(acc, s.Condition)
		for _, child := range s.TrueCase {
			acc = collectStatementMessages(acc, child)
		}
		for _, child := range s.FalseCase {
			acc = collectStatementMessages(acc, child)
		}
	case *ir.TryCatch:
		for _, child := range s.Body {
			acc = collectStatementMessages(acc, child)
		}
		for _, child := range s.CatchStmts {
			acc = collectStatementMessages(acc, child)
		}
	}
	return acc
}

func collectMessages(acc []MessageReport, expr ir.Expression) []MessageReport {
	switch e := expr.(type) {
	case *ir.LocalizedString:
		var text strings.Builder
		text.WriteString(e.MessageParts[0].Text)
		for i := range e.Expressions {
			text.WriteString("{$" + e.PlaceholderNames[i].Name + "}")
			text.WriteString(e.MessageParts[i+1].Text)
		}
		acc = append(acc, MessageReport{
			ID:          e.MessageID(),
			Text:        text.String(),
			Description: e.MetaBlock.Description,
			Meaning:     e.MetaBlock.Meaning,
		})
		for _, child := range e.Expressions {
			acc = collectMessages(acc, child)
		}
	case *ir.WriteVar:
		acc = collectMessages(acc, e.Value)
	case *ir.WriteKey:
		acc = collectMessages(collectMessages(collectMessages(acc, e.Receiver), e.Index), e.Value)
	case *ir.WriteProp:
		acc = collectMessages(collectMessages(acc, e.Receiver), e.Value)
	case *ir.InvokeMethod:
		acc = collectMessages(acc, e.Receiver)
		for _, arg := range e.Args {
			acc = collectMessages(acc, arg)
		}
	case *ir.InvokeFunction:
		acc = collectMessages(acc, e.Fn)
		for _, arg := range e.Args {
			acc = collectMessages(acc, arg)
		}
	case *ir.Instantiate:
		acc = collectMessages(acc, e.Class)
		for _, arg := range e.Args {
			acc = collectMessages(acc, arg)
		}
	case *ir.Conditional:
		acc = collectMessages(collectMessages(collectMessages(acc, e.Condition), e.TrueCase), e.FalseCase)
	case *ir.Not:
		acc = collectMessages(acc, e.Condition)
	case *ir.AssertNotNull:
		acc = collectMessages(acc, e.Expr)
	case *ir.Cast:
		acc = collectMessages(acc, e.Expr)
	case *ir.Function:
		for _, child := range e.Statements {
			acc = collectStatementMessages(acc, child)
		}
	case *ir.UnaryOp:
		acc = collectMessages(acc, e.Expr)
	case *ir.BinaryOp:
		acc = collectMessages(collectMessages(acc, e.Lhs), e.Rhs)
	case *ir.ReadProp:
		acc = collectMessages(acc, e.Receiver)
	case *ir.ReadKey:
		acc = collectMessages(collectMessages(acc, e.Receiver), e.Index)
	case *ir.LiteralArray:
		for _, entry := range e.Entries {
			acc = collectMessages(acc, entry)
		}
	case *ir.LiteralMap:
		for _, entry := range e.Entries {
			acc = collectMessages(acc, entry.Value)
		}
	case *ir.Comma:
		for _, part := range e.Parts {
			acc = collectMessages(acc, part)
		}
	case *ir.Typeof:
		acc = collectMessages(acc, e.Expr)
	}
	return acc
}
