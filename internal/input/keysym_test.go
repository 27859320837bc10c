package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeysymLowercases(t *testing.T) {
	assert.Equal(t, "q", NormalizeKeysym("Q"))
}

func TestNormalizeKeysymAppliesAliases(t *testing.T) {
	assert.Equal(t, "return", NormalizeKeysym("Enter"))
	assert.Equal(t, "escape", NormalizeKeysym("Esc"))
	assert.Equal(t, "delete", NormalizeKeysym("DEL"))
}
