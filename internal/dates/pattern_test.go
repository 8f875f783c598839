package dates

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
)

func TestCompile_EmptyUsesDefault(t *testing.T) {
	p, err := Compile("")
	require.NoError(t, err)
	assert.Same(t, Default(), p)
	assert.True(t, p.IsDefault())
	assert.Equal(t, DefaultPattern, p.String())
}

func TestCompile_Custom(t *testing.T) {
	p, err := Compile(`\d{4}`)
	require.NoError(t, err)
	assert.False(t, p.IsDefault())
	assert.Equal(t, `\d{4}`, p.String())
}

func TestCompile_Invalid(t *testing.T) {
	for _, expr := range []string{"(", "[a-", `\d{2,1}`, "*x"} {
		t.Run(expr, func(t *testing.T) {
			p, err := Compile(expr)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
			assert.Contains(t, err.Error(), expr)
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("(") })
	assert.NotPanics(t, func() { MustCompile(`\d+`) })
}
