package translate

import (
	"strings"

	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
)

// attachComments converts a statement's leading comments into output trivia.
// A block comment becomes one trivia unit reproducing its text exactly. A
// single-line comment containing embedded line breaks is split so each line
// becomes its own unit, all sharing the trailing-newline flag; concatenated
// back together the trivia reproduce the original text.
func attachComments(node jsast.Node, comments []ir.LeadingComment) {
	for _, c := range comments {
		if c.Multiline {
			jsast.AttachTrivia(node, jsast.Trivia{
				Text:            c.Text,
				Multiline:       true,
				TrailingNewline: c.TrailingNewline,
			})
			continue
		}
		for _, line := range strings.Split(c.Text, "\n") {
			jsast.AttachTrivia(node, jsast.Trivia{
				Text:            line,
				TrailingNewline: c.TrailingNewline,
			})
		}
	}
}
