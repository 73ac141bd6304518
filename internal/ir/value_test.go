package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value LiteralValue
		want  string
	}{
		{"undefined", Undefined{}, "undefined"},
		{"null", Null{}, "null"},
		{"string", Str("a\"b"), `"a\"b"`},
		{"number", Num(2.5), "2.5"},
		{"bool", Bool(true), "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLiteral(tt.value))
		})
	}
}

func TestStmtModifiers(t *testing.T) {
	base := StmtBase{}
	assert.False(t, base.HasModifier(ModifierFinal))

	base.Modifiers |= ModifierFinal
	assert.True(t, base.HasModifier(ModifierFinal))
}
