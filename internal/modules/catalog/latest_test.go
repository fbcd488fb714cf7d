package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestDropsOlderTickets(t *testing.T) {
	var l Latest[string]

	first := l.Begin("c1")
	second := l.Begin("c2")

	assert.False(t, l.Accept(first))
	assert.True(t, l.Accept(second))
	assert.Equal(t, "c2", l.Current())
	assert.Equal(t, "c1", first.Key)

	third := l.Begin("c1")
	assert.False(t, l.Accept(second))
	assert.True(t, l.Accept(third))
}
