package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerValidatesPorts(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingSearchService)

	_, err = NewServer(&Ports{Search: &mockSearch{}})
	assert.ErrorIs(t, err, ErrMissingResultStore)
}

func TestNewServerSucceedsWithRequiredPorts(t *testing.T) {
	s, err := NewServer(&Ports{Search: &mockSearch{}, Results: newMockResults()})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
