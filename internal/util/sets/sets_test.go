package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Insert(t *testing.T) {
	s := New("pace")
	assert.False(t, s.Insert("pace"))
	assert.True(t, s.Insert("tempo"))
	assert.True(t, s.Has("tempo"))
	assert.Len(t, s, 2)
}
