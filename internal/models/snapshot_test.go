package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "nil input", input: nil, expected: []string{}},
		{name: "no duplicates", input: []string{"A", "B"}, expected: []string{"A", "B"}},
		{name: "keeps first-seen order", input: []string{"B", "A", "B", "C", "A"}, expected: []string{"B", "A", "C"}},
		{name: "exact text equality", input: []string{"a", "A", "a "}, expected: []string{"a", "A", "a "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedupe(tt.input))
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	checked := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	snap := NewSnapshot([]string{"X", "X", "Y"}, checked)

	assert.Equal(t, []string{"X", "Y"}, snap.Items)
	assert.Equal(t, time.UTC, snap.LastChecked.Location())
	assert.True(t, snap.LastChecked.Equal(checked))
}

func TestMonitorState_PriorItems(t *testing.T) {
	var nilState *MonitorState
	assert.Nil(t, nilState.PriorItems("default"))

	state := NewMonitorState()
	assert.Nil(t, state.PriorItems("default"))

	state.Targets["bratislava"] = &Snapshot{Items: []string{"A"}}
	assert.Equal(t, []string{"A"}, state.PriorItems("bratislava"))
}

func TestMonitorState_Clone(t *testing.T) {
	since := time.Now().UTC()
	state := NewMonitorState()
	state.SiteDown = true
	state.DownSince = &since
	state.Targets["default"] = &Snapshot{Items: []string{"A", "B"}}

	clone := state.Clone()
	require.NotNil(t, clone.DownSince)
	assert.True(t, clone.SiteDown)

	clone.Targets["default"].Items[0] = "changed"
	*clone.DownSince = since.Add(time.Hour)

	assert.Equal(t, []string{"A", "B"}, state.Targets["default"].Items)
	assert.True(t, state.DownSince.Equal(since))
}
