package translate

import (
	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
)

// mapping converts an IR source span into an output mapping, constructing
// the file descriptor on first reference to its URL and reusing it for
// every later span into the same file. The cache lives and dies with the
// translator; it is never shared across runs.
func (t *translator) mapping(span *ir.SourceSpan) *jsast.Mapping {
	if span == nil || span.File == nil {
		return nil
	}
	file, ok := t.files[span.File.URL]
	if !ok {
		file = &jsast.SourceFile{URL: span.File.URL, Content: span.File.Content}
		t.files[span.File.URL] = file
	}
	return &jsast.Mapping{File: file, Start: span.Start, End: span.End}
}
