package script

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLua(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `echo hello`, `echo hello`},
		{"double quote", `echo "hi"`, `echo \"hi\"`},
		{"backslash", `dir C:\tmp`, `dir C:\\tmp`},
		{"backslash before quote", `echo \"`, `echo \\\"`},
		{"only backslashes", `\\`, `\\\\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLua(tt.in))
		})
	}
}

// Escaping must round-trip: the Lua lexer's unescape of the rendered literal
// yields the original captured command.
func TestEscapeLuaRoundTrip(t *testing.T) {
	inputs := []string{
		`echo "a b"`,
		`grep -E "fo\"o" file`,
		`type C:\path\to\file`,
		`echo \\" tricky `,
	}
	for _, in := range inputs {
		escaped := EscapeLua(in)
		// Undo Lua string-literal escaping the way the lexer would.
		unescaped := strings.ReplaceAll(escaped, `\"`, "\x00")
		unescaped = strings.ReplaceAll(unescaped, `\\`, `\`)
		unescaped = strings.ReplaceAll(unescaped, "\x00", `"`)
		assert.Equal(t, in, unescaped, "round trip of %q", in)
	}
}

func TestNewPreservesOrder(t *testing.T) {
	m := New("demo", []string{"echo a", "echo b", "echo c"})
	require.Len(t, m.Steps, 3)
	assert.Equal(t, []string{"echo a", "echo b", "echo c"}, m.Commands())
}

func TestRenderGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name     string
		commands []string
	}{
		{"simple", []string{"echo a", "echo b"}},
		{"escaping", []string{`echo "quoted"`, `dir C:\tmp\sub`}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.name, tt.commands)
			g.Assert(t, tt.name, m.Render())
		})
	}
}

func TestRenderHasSingleEntryPoint(t *testing.T) {
	m := New("x", []string{"echo 1"})
	src := string(m.Render())
	assert.Equal(t, 1, strings.Count(src, "function "))
	assert.Contains(t, src, "function main(argv)")
	assert.True(t, strings.HasSuffix(src, "end\n"))
}
