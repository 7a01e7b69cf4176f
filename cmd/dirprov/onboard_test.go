package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitGroups(t *testing.T) {
	assert.Nil(t, splitGroups(""))
	assert.Equal(t, []string{"g1"}, splitGroups("g1"))
	assert.Equal(t, []string{"g1", "g2", "g3"}, splitGroups("g1, g2 ,g3"))
	assert.Equal(t, []string{"g1", "g2"}, splitGroups("g1,,g2,"))
}
