package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBudget(t *testing.T) {
	assert.True(t, IsValidBudget(0, 0))
	assert.True(t, IsValidBudget(5000, 10000))
	assert.False(t, IsValidBudget(10000, 5000))
	assert.False(t, IsValidBudget(-1, 100))
}

func TestNormalizeTags_DedupesAndKeepsOrder(t *testing.T) {
	got := NormalizeTags([]string{" 家具 ", "handmade", "家具", "", "wood"})
	assert.Equal(t, []string{"家具", "handmade", "wood"}, got)
}

func TestSplitTags_LegacyStringForm(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTags("a, b, a"))
	assert.Nil(t, SplitTags("  "))
}
