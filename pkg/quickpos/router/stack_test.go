package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	s := NewStack()
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Pop())

	s.Push(entryFor(Dashboard))
	s.Push(StackEntry{Path: "item_detail/42", Route: ItemDetail, Params: map[string]string{"itemId": "42"}})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"dashboard", "item_detail/42"}, s.Paths())

	top := s.Pop()
	require.NotNil(t, top)
	assert.Equal(t, "42", top.Params["itemId"])
	assert.Equal(t, []string{"dashboard"}, s.Paths())

	s.Reset(entryFor(PinLogin))
	assert.Equal(t, []string{"pin_login"}, s.Paths())

	s.Clear()
	assert.True(t, s.IsEmpty())
	assert.Empty(t, s.Paths())
}
