package clock

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCivil(t *testing.T) {
	clk, err := NewCivil("America/Sao_Paulo")
	require.NoError(t, err)

	assert.Equal(t, "America/Sao_Paulo", clk.Now().Location().String())
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), clk.Today())
}

func TestNewCivil_UnknownTimezone(t *testing.T) {
	_, err := NewCivil("Mars/Olympus_Mons")
	require.Error(t, err)
}
