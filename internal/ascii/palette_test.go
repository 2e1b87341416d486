package ascii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/textart-server/internal/domain"
)

func TestNewPalette(t *testing.T) {
	p, err := NewPalette("mine", "█▓ ")
	require.NoError(t, err)
	assert.Equal(t, "mine", p.Name())
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, '▓', p.At(1))
	assert.True(t, p.Contains('█'))
	assert.False(t, p.Contains('#'))
	assert.Equal(t, "█▓ ", p.String())
}

func TestNewPalette_Errors(t *testing.T) {
	tests := []struct {
		name  string
		chars string
	}{
		{"empty", ""},
		{"single", "@"},
		{"invalid utf8", "\xff\xfe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPalette("x", tt.chars)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
		})
	}
}

func TestCatalog_Builtins(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"binary", "blocks", "detailed", "standard"}, c.Names())

	p, err := c.Lookup("")
	require.NoError(t, err)
	assert.Equal(t, "@#$%&*+=-:.", p.String())

	p, err = c.Lookup("BLOCKS")
	require.NoError(t, err)
	assert.Equal(t, "blocks", p.Name())
}

func TestCatalog_Custom(t *testing.T) {
	c, err := NewCatalog(map[string]string{
		" Dots ":   "●○",
		"standard": "XO",
	})
	require.NoError(t, err)

	p, err := c.Lookup("dots")
	require.NoError(t, err)
	assert.Equal(t, "●○", p.String())

	p, err = c.Lookup("standard")
	require.NoError(t, err)
	assert.Equal(t, "XO", p.String(), "custom palettes may replace a built-in")

	all := c.All()
	assert.Equal(t, "●○", all["dots"])
	assert.Len(t, all, 5)
}

func TestCatalog_Errors(t *testing.T) {
	_, err := NewCatalog(map[string]string{"  ": "ab"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = NewCatalog(map[string]string{"short": "a"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	c, err := NewCatalog(nil)
	require.NoError(t, err)
	_, err = c.Lookup("nope")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	assert.Contains(t, err.Error(), `"nope"`)
}
