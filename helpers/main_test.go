package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "Jose Nunez", RemoveAccents("José Núñez"))
	assert.Equal(t, "Maria", RemoveAccents("María"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "S/ 159.00", FormatAmount(15900))
	assert.Equal(t, "S/ 0.50", FormatAmount(50))
	assert.Equal(t, "S/ 1.05", FormatAmount(105))
	assert.Equal(t, "S/ 0.00", FormatAmount(0))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]int{1, 2, 3}, 2))
	assert.False(t, Contains([]int{1, 2, 3}, 4))
	assert.False(t, Contains(nil, 1))
}
