package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Valid(t *testing.T) {
	exprs := []string{
		"",
		"true",
		"True",
		"false",
		"not false",
		"g == 0",
		"g != 3",
		"g < 10 and g >= 2",
		"method(g) == 'foo'",
		"phase(g) == \"After Parsing\"",
		"'foo' in method(g)",
		"method == phase",
		"(g == 1 or g == 2) and not (phase(g) == 'x')",
		"g == 1 || g == 2 && !false",
		"method(0) == 'foo'",
		"method(phase(g)) == 'foo'",
	}
	for _, src := range exprs {
		_, err := Compile(src)
		assert.NoError(t, err, "expression %q", src)
	}
}

func TestCompile_Invalid(t *testing.T) {
	exprs := []string{
		"g ==",
		"== 1",
		"(g == 1",
		"g == 1)",
		"g = 1",
		"bogus",
		"g @ 1",
		"'unterminated",
		"method(",
		"g == 1 extra",
		"1 +",
	}
	for _, src := range exprs {
		_, err := Compile(src)
		require.Error(t, err, "expression %q", src)
		assert.ErrorIs(t, err, ErrInvalidFilter, "expression %q", src)
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		src    string
		g      int
		method string
		phase  string
		want   bool
	}{
		{"true", 0, "foo", "Phase1", true},
		{"false", 0, "foo", "Phase1", false},
		{"g == 1", 1, "bar", "Phase2", true},
		{"g == 1", 2, "bar", "Phase2", false},
		{"g < 5 and g > 2", 3, "", "", true},
		{"g < 5 and g > 2", 5, "", "", false},
		{"g <= 5 or g >= 100", 100, "", "", true},
		{"not g == 0", 1, "", "", true},
		{"method(g) == 'foo'", 0, "foo", "", true},
		{"method(g) != 'foo'", 0, "foo", "", false},
		{"phase(g) == 'After Parsing'", 0, "", "After Parsing", true},
		{"'Pars' in phase(g)", 0, "", "After Parsing", true},
		{"'pars' in phase(g)", 0, "", "After Parsing", false},
		{"method == 'foo' and phase == 'p'", 0, "foo", "p", true},
		{"method(g) < 'b'", 0, "a", "", true},
		{"g == 1 || 'x' in method(g)", 0, "axb", "", true},
		{"!(g == 1)", 1, "", "", false},
		// Call arguments are evaluated but ignored.
		{"method(42) == 'foo'", 0, "foo", "", true},
		{"method(g == 0) == 'foo'", 0, "foo", "", true},
	}
	for _, tt := range tests {
		f, err := Compile(tt.src)
		require.NoError(t, err, "expression %q", tt.src)
		got, err := f.Match(tt.g, tt.method, tt.phase)
		require.NoError(t, err, "expression %q", tt.src)
		assert.Equal(t, tt.want, got, "expression %q against (%d, %q, %q)", tt.src, tt.g, tt.method, tt.phase)
	}
}

func TestMatch_TypeErrors(t *testing.T) {
	tests := []string{
		// Non-boolean results.
		"g",
		"'foo'",
		"42",
		// Mismatched comparison operands.
		"g == 'foo'",
		"method(g) == true",
		"g < method(g)",
		"true < false",
		// Non-boolean connective operands.
		"g and true",
		"true and g",
		"not g",
		// Containment needs two strings.
		"g in method(g)",
	}
	for _, src := range tests {
		f, err := Compile(src)
		require.NoError(t, err, "expression %q should parse", src)
		_, err = f.Match(1, "foo", "bar")
		require.Error(t, err, "expression %q", src)
		assert.ErrorIs(t, err, ErrInvalidFilter, "expression %q", src)
	}
}

func TestMatch_ShortCircuit(t *testing.T) {
	// The right operand's type error must not surface when the left
	// operand already decides the result.
	f, err := Compile("false and g")
	require.NoError(t, err)
	got, err := f.Match(0, "", "")
	require.NoError(t, err)
	assert.False(t, got)

	f, err = Compile("true or g")
	require.NoError(t, err)
	got, err = f.Match(0, "", "")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestMatch_Pure(t *testing.T) {
	f, err := Compile("g == 2 and 'foo' in method(g)")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := f.Match(2, "xfoox", "Phase1")
		require.NoError(t, err)
		assert.True(t, got)
	}
}

func TestCompile_EmptyMatchesAll(t *testing.T) {
	f, err := Compile("")
	require.NoError(t, err)
	got, err := f.Match(17, "anything", "whatever")
	require.NoError(t, err)
	assert.True(t, got)
}
