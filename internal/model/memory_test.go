package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{"a", "b", "a"}))
	assert.Equal(t, []string{"b", "a"}, NormalizeTags([]string{"b", "a", "b", "a"}))
	assert.Equal(t, []string{"a"}, NormalizeTags([]string{"", "a", ""}))
}

func TestNormalizeRefs(t *testing.T) {
	assert.Nil(t, NormalizeRefs(nil))
	assert.Equal(t, []int64{1, 2, 3}, NormalizeRefs([]int64{1, 2, 1, 3, 2}))
}

func TestHasTag(t *testing.T) {
	m := Memory{Tags: []string{"api", "auth"}}
	assert.True(t, m.HasTag("api"))
	assert.False(t, m.HasTag("db"))
}
