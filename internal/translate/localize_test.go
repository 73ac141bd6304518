package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slate-compiler/slate/internal/ir"
	"github.com/slate-compiler/slate/internal/jsast"
	"github.com/slate-compiler/slate/internal/testutil"
	"github.com/slate-compiler/slate/internal/translate"
)

func TestLocalizeModernTaggedTemplate(t *testing.T) {
	msg := testutil.Localized(
		ir.MessageMeta{},
		[]string{"Hello, ", "!"},
		[]string{"name"},
		testutil.ReadVar("user"),
	)
	node := lowerExpr(t, msg, translate.TierModern)
	assert.Equal(t,
		`(tagged-template (id $localize) (template (seg "Hello, " "Hello, ") (id user) (seg ":name:!" ":name:!")))`,
		jsast.Dump(node))
}

func TestLocalizeModernWithMetadata(t *testing.T) {
	msg := testutil.Localized(
		ir.MessageMeta{Meaning: "login greeting", Description: "shown after login"},
		[]string{"Welcome back"},
		nil,
	)
	node := lowerExpr(t, msg, translate.TierModern)
	assert.Equal(t,
		`(tagged-template (id $localize) (template (seg ":login greeting|shown after login:Welcome back" ":login greeting|shown after login:Welcome back")))`,
		jsast.Dump(node))
}

func TestLocalizeLegacyHelperCall(t *testing.T) {
	resolver := testutil.NewTableResolver(map[string]string{"tslib": "tslib_1"})
	msg := testutil.Localized(
		ir.MessageMeta{},
		[]string{"Hello, ", "!"},
		[]string{"name"},
		testutil.ReadVar("user"),
	)
	node, err := translate.TranslateExpression(msg, resolver, testutil.NopRecorder{}, translate.TierLegacy)
	require.NoError(t, err)
	assert.Equal(t,
		`(call (id $localize) (call (prop (id tslib_1) __makeTemplateObject) (array (str "Hello, ") (str ":name:!")) (array (str "Hello, ") (str ":name:!"))) (id user))`,
		jsast.Dump(node))

	require.Len(t, resolver.Requests, 1)
	assert.Equal(t, testutil.ImportRequest{Module: "tslib", Symbol: "__makeTemplateObject"}, resolver.Requests[0])
}

func TestLocalizeLegacyAmbientHelper(t *testing.T) {
	msg := testutil.Localized(ir.MessageMeta{}, []string{"plain"}, nil)
	node, err := translate.TranslateExpression(msg, testutil.AmbientResolver{}, testutil.NopRecorder{}, translate.TierLegacy)
	require.NoError(t, err)
	assert.Equal(t,
		`(call (id $localize) (call (id __makeTemplateObject) (array (str "plain")) (array (str "plain"))))`,
		jsast.Dump(node))
}

// Both tiers must carry identical cooked and raw segment content and splice
// the same expressions in the same order.
func TestLocalizeTierEquivalence(t *testing.T) {
	msg := testutil.Localized(
		ir.MessageMeta{Description: "cart total"},
		[]string{"You have ", " items worth ", "."},
		[]string{"count", "total"},
		testutil.ReadVar("n"),
		testutil.ReadVar("sum"),
	)

	modern := lowerExpr(t, msg, translate.TierModern)
	legacy := lowerExpr(t, msg, translate.TierLegacy)

	tagged := modern.(*jsast.TaggedTemplate)
	call := legacy.(*jsast.Call)
	templateObject := call.Args[0].(*jsast.Call)
	cooked := templateObject.Args[0].(*jsast.ArrayLit)
	raw := templateObject.Args[1].(*jsast.ArrayLit)

	require.Len(t, tagged.Template.Elements, 3)
	require.Len(t, cooked.Elements, 3)
	for i, el := range tagged.Template.Elements {
		assert.Equal(t, el.Cooked, cooked.Elements[i].(*jsast.StringLit).Value, "cooked segment %d", i)
		assert.Equal(t, el.Raw, raw.Elements[i].(*jsast.StringLit).Value, "raw segment %d", i)
	}

	require.Len(t, tagged.Template.Expressions, 2)
	require.Len(t, call.Args, 3)
	for i, expr := range tagged.Template.Expressions {
		assert.Equal(t, jsast.Dump(expr), jsast.Dump(call.Args[i+1]), "expression %d", i)
	}
}

func TestLocalizeRawEscaping(t *testing.T) {
	tests := []struct {
		name       string
		meta       ir.MessageMeta
		parts      []string
		wantCooked string
		wantRaw    string
	}{
		{
			name:       "leading colon without block",
			parts:      []string{":warning"},
			wantCooked: ":warning",
			wantRaw:    `\:warning`,
		},
		{
			name:       "backslashes doubled",
			parts:      []string{`C:\path`},
			wantCooked: `C:\path`,
			wantRaw:    `C:\\path`,
		},
		{
			name:       "backtick and interpolation",
			parts:      []string{"use `x` and ${y}"},
			wantCooked: "use `x` and ${y}",
			wantRaw:    "use \\`x\\` and $\\{y}",
		},
		{
			name:       "colons inside block escaped",
			meta:       ir.MessageMeta{Description: "a:b"},
			parts:      []string{"text"},
			wantCooked: ":a:b:text",
			wantRaw:    `:a\:b:text`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testutil.Localized(tt.meta, tt.parts, nil)
			node := lowerExpr(t, msg, translate.TierModern)
			tagged := node.(*jsast.TaggedTemplate)
			require.Len(t, tagged.Template.Elements, 1)
			assert.Equal(t, tt.wantCooked, tagged.Template.Elements[0].Cooked)
			assert.Equal(t, tt.wantRaw, tagged.Template.Elements[0].Raw)
		})
	}
}

func TestLocalizeSegmentMappings(t *testing.T) {
	file := &ir.SourceFile{URL: "app.html"}
	msg := testutil.Localized(
		ir.MessageMeta{},
		[]string{"Hi ", ""},
		[]string{"name"},
		testutil.ReadVar("user"),
	)
	msg.SourceSpan = &ir.SourceSpan{File: file, Start: 10, End: 40}
	msg.MessageParts[0].SourceSpan = &ir.SourceSpan{File: file, Start: 10, End: 13}
	msg.PlaceholderNames[0].SourceSpan = &ir.SourceSpan{File: file, Start: 13, End: 20}

	node := lowerExpr(t, msg, translate.TierModern)
	tagged := node.(*jsast.TaggedTemplate)

	require.NotNil(t, tagged.Mapping)
	assert.Equal(t, 10, tagged.Mapping.Start)
	assert.Equal(t, 40, tagged.Mapping.End)

	head := tagged.Template.Elements[0]
	require.NotNil(t, head.Mapping)
	assert.Equal(t, 13, head.Mapping.End)

	spliced := tagged.Template.Expressions[0]
	splicedBase := spliced.(*jsast.Identifier)
	require.NotNil(t, splicedBase.Mapping)
	assert.Equal(t, 13, splicedBase.Mapping.Start)
	assert.Equal(t, 20, splicedBase.Mapping.End)

	// The trailing part has no span of its own and falls back to the
	// message span.
	tail := tagged.Template.Elements[1]
	require.NotNil(t, tail.Mapping)
	assert.Equal(t, 10, tail.Mapping.Start)
}
