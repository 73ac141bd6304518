package ir

// SourceFile identifies an originating source file by URL together with its
// full text. The text is carried so that downstream source-map generation
// can embed file content without re-reading anything from disk.
type SourceFile struct {
	URL     string
	Content string
}

// SourceSpan is a byte-offset range into a SourceFile. Start and End are
// offsets into SourceFile.Content; End is exclusive.
type SourceSpan struct {
	File  *SourceFile
	Start int
	End   int
}

// LeadingComment is a comment attached ahead of a statement.
// Multiline selects block (/* */) over single-line (//) form.
type LeadingComment struct {
	Text            string
	Multiline       bool
	TrailingNewline bool
}
