package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MessageMeta is the translation metadata carried by a localized message.
// All fields are optional; an empty MessageMeta serializes to nothing.
type MessageMeta struct {
	Meaning     string
	Description string
	CustomID    string
	LegacyIDs   []string
}

// LiteralPiece is a literal text segment of a localized message.
type LiteralPiece struct {
	Text       string
	SourceSpan *SourceSpan
}

// PlaceholderPiece names an expression slot of a localized message.
type PlaceholderPiece struct {
	Name       string
	SourceSpan *SourceSpan
}

// LocalizedString is an internationalizable message: interleaved literal
// segments and expressions. Invariant of well-formed input:
// len(MessageParts) == len(Expressions)+1 and
// len(PlaceholderNames) == len(Expressions).
type LocalizedString struct {
	ExprBase
	MetaBlock        MessageMeta
	MessageParts     []LiteralPiece
	PlaceholderNames []PlaceholderPiece
	Expressions      []Expression
}

func (*LocalizedString) irExpr() {}

// NewLocalizedString builds a LocalizedString from plain message parts and
// placeholder names. Per-piece spans default to the message span.
func NewLocalizedString(base ExprBase, meta MessageMeta, parts, placeholders []string, exprs []Expression) *LocalizedString {
	ls := &LocalizedString{ExprBase: base, MetaBlock: meta, Expressions: exprs}
	for _, part := range parts {
		ls.MessageParts = append(ls.MessageParts, LiteralPiece{Text: part})
	}
	for _, name := range placeholders {
		ls.PlaceholderNames = append(ls.PlaceholderNames, PlaceholderPiece{Name: name})
	}
	return ls
}

// MessageSegment is one serialized segment of a localized message: the
// cooked form carries the metadata or placeholder block verbatim, the raw
// form is escaped for embedding in a template literal.
type MessageSegment struct {
	Cooked     string
	Raw        string
	SourceSpan *SourceSpan
}

// legacyIDSeparator joins legacy message IDs inside a metadata block.
// U+241F (symbol for unit separator) cannot appear in rendered text.
const legacyIDSeparator = "␟"

// SerializeHead serializes the message metadata block together with the
// first literal segment. The block has the shape
// "meaning|description@@id" with legacy IDs appended.
func (ls *LocalizedString) SerializeHead() MessageSegment {
	meta := ls.MetaBlock.serialize()
	return cookedRawSegment(meta, ls.MessageParts[0].Text, ls.messagePartSpan(0))
}

// SerializePart serializes the literal segment at partIndex (>= 1) prefixed
// by the placeholder block of the expression preceding it.
func (ls *LocalizedString) SerializePart(partIndex int) MessageSegment {
	placeholder := ls.PlaceholderNames[partIndex-1].Name
	return cookedRawSegment(placeholder, ls.MessageParts[partIndex].Text, ls.messagePartSpan(partIndex))
}

// PlaceholderSpan returns the source span of the i-th expression slot,
// falling back to the message span when the slot is unmapped.
func (ls *LocalizedString) PlaceholderSpan(i int) *SourceSpan {
	if i < len(ls.PlaceholderNames) && ls.PlaceholderNames[i].SourceSpan != nil {
		return ls.PlaceholderNames[i].SourceSpan
	}
	return ls.SourceSpan
}

func (ls *LocalizedString) messagePartSpan(i int) *SourceSpan {
	if ls.MessageParts[i].SourceSpan != nil {
		return ls.MessageParts[i].SourceSpan
	}
	return ls.SourceSpan
}

// MessageID computes a stable fingerprint of the message content. The
// serialized form is NFC-normalized first so visually identical messages
// hash identically regardless of producer encoding.
func (ls *LocalizedString) MessageID() string {
	if ls.MetaBlock.CustomID != "" {
		return ls.MetaBlock.CustomID
	}
	var sb strings.Builder
	sb.WriteString(ls.MessageParts[0].Text)
	for i := range ls.Expressions {
		sb.WriteString("{$" + ls.PlaceholderNames[i].Name + "}")
		sb.WriteString(ls.MessageParts[i+1].Text)
	}
	normalized := norm.NFC.String(sb.String())
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}

func (m MessageMeta) serialize() string {
	block := m.Description
	if m.Meaning != "" {
		block = m.Meaning + "|" + block
	}
	if m.CustomID != "" {
		block = block + "@@" + m.CustomID
	}
	for _, id := range m.LegacyIDs {
		block = block + legacyIDSeparator + id
	}
	return block
}

// cookedRawSegment builds a segment from a metadata/placeholder block and
// literal text. An empty block contributes nothing, but a literal that
// happens to start with a colon must have it escaped in the raw form so the
// runtime does not mistake it for a block. Backslashes are doubled before
// the colon escapes are inserted so the inserted escapes survive intact.
func cookedRawSegment(block, text string, span *SourceSpan) MessageSegment {
	if block == "" {
		return MessageSegment{
			Cooked:     text,
			Raw:        escapeForTemplateLiteral(escapeStartingColon(escapeSlashes(text))),
			SourceSpan: span,
		}
	}
	return MessageSegment{
		Cooked:     ":" + block + ":" + text,
		Raw:        escapeForTemplateLiteral(":" + escapeColons(escapeSlashes(block)) + ":" + escapeSlashes(text)),
		SourceSpan: span,
	}
}

func escapeSlashes(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

func escapeStartingColon(s string) string {
	if strings.HasPrefix(s, ":") {
		return `\` + s
	}
	return s
}

func escapeColons(s string) string {
	return strings.ReplaceAll(s, ":", `\:`)
}

// escapeForTemplateLiteral escapes the characters that would terminate or
// interpolate a template literal: backtick and "${". Backslashes are
// handled by escapeSlashes beforehand.
func escapeForTemplateLiteral(s string) string {
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "${", `$\{`)
	return s
}
