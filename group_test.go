package roadmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(timeline, phase string, wps ...string) TimelineEntry {
	return TimelineEntry{Timeline: timeline, Phase: phase, Workpackages: wps}
}

func TestGroupPreservesFirstSeenOrder(t *testing.T) {
	entries := []TimelineEntry{
		entry("Q3", "Scale", "c"),
		entry("Q1", "Build", "a"),
		entry("Q3", "Adopt", "d"),
		entry("Q1", "Build", "b"),
		entry("Q2", "", "e"),
		entry("Q3", "Scale", "f"),
	}

	got := Group(entries)
	want := []TimelineGroup{
		{Timeline: "Q3", Phases: []PhaseGroup{
			{Phase: "Scale", Workpackages: []string{"c", "f"}},
			{Phase: "Adopt", Workpackages: []string{"d"}},
		}},
		{Timeline: "Q1", Phases: []PhaseGroup{
			{Phase: "Build", Workpackages: []string{"a", "b"}},
		}},
		{Timeline: "Q2", Phases: []PhaseGroup{
			{Phase: "", Workpackages: []string{"e"}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Group() mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, got[0].HasPhases())
	assert.False(t, got[2].HasPhases())
	assert.Equal(t, []string{"c", "f", "d"}, got[0].Workpackages())
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Pairs(nil))
}

func TestPairs(t *testing.T) {
	entries := []TimelineEntry{
		entry("Phase 1", "Foundation", "Build X"),
		entry("Phase 1", "Foundation", "Build Y"),
		entry("Phase 2", "Growth", "Launch Z"),
		entry("Phase 1", "Hardening"),
	}
	got := Pairs(entries)
	want := []Pair{
		{Timeline: "Phase 1", Phase: "Foundation"},
		{Timeline: "Phase 2", Phase: "Growth"},
		{Timeline: "Phase 1", Phase: "Hardening"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Pairs() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Phase 1 / Foundation", got[0].String())
	assert.Equal(t, "Solo", Pair{Timeline: "Solo"}.String())
}

func TestErrorCodes(t *testing.T) {
	cause := errors.New("permission denied")
	err := fmt.Errorf("save: %w", WrapError(ErrCodeOutputWrite, cause, "write %s", "/tmp/x.pptx"))

	require.True(t, IsCode(err, ErrCodeOutputWrite))
	assert.False(t, IsCode(err, ErrCodeInputNotFound))
	assert.ErrorIs(t, err, cause)
	assert.True(t, Fatal(err))
	assert.Contains(t, err.Error(), "/tmp/x.pptx")

	warn := NewError(ErrCodeAssetUnavailable, "logo %q not found", "logo.png")
	assert.False(t, Fatal(warn))
	assert.False(t, Fatal(nil))
}

func TestWarnings(t *testing.T) {
	var w Warnings
	w.Add(nil, NewError(ErrCodeConfigMalformed, "bad color"), nil)
	w.Add(NewError(ErrCodeAssetUnavailable, "no logo"))

	require.Len(t, w, 2)
	assert.True(t, w.Has(ErrCodeAssetUnavailable))
	assert.False(t, w.Has(ErrCodeSheetMissing))
	assert.Contains(t, w.String(), "bad color; ")
}
