package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_ManualOverwriteAndRemoval(t *testing.T) {
	sel := Selection{
		AutoOfficers:     []OfficerRef{{PositionNumber: "P1", UnitCode: "unitA"}},
		ManualOfficers:   []OfficerRef{{PositionNumber: "P1", UnitCode: "unitA"}, {PositionNumber: "P2", UnitCode: "unitB"}},
		RemovedPositions: []string{"P2"},
	}

	r := Compose(sel)

	assert.Equal(t, []string{"P1"}, r.IncludedPositions())
	inc := r.Included()
	require.Len(t, inc, 1)
	assert.Equal(t, SourceManual, inc[0].Source)

	removed := r.Removed()
	require.Len(t, removed, 1)
	assert.Equal(t, "P2", removed[0].PositionNumber)
	assert.True(t, removed[0].Removed)
}

func TestCompose_Idempotent(t *testing.T) {
	sel := Selection{
		AutoOfficers:     []OfficerRef{{PositionNumber: "A1", Name: "Ana"}, {PositionNumber: "A2", Name: "Budi"}},
		ManualOfficers:   []OfficerRef{{PositionNumber: "M1", Name: "Citra"}, {PositionNumber: "A2", Name: "Budi", UnitCode: "X"}},
		RemovedPositions: []string{"A1"},
	}
	assert.Equal(t, Compose(sel).Included(), Compose(sel).Included())
}

func TestCompose_RemoveRestoreRoundTrip(t *testing.T) {
	sel := Selection{
		AutoOfficers:   []OfficerRef{{PositionNumber: "A1", Name: "Ana", UnitCode: "U1"}, {PositionNumber: "A2", Name: "Budi", UnitCode: "U1"}},
		ManualOfficers: []OfficerRef{{PositionNumber: "M1", Name: "Citra", UnitCode: "U2"}},
	}
	r := Compose(sel)
	before := r.Included()

	r.Remove("A2")
	assert.Equal(t, []string{"A1", "M1"}, r.IncludedPositions())

	r.Restore("A2")
	assert.Equal(t, before, r.Included())
}

func TestCompose_UniqueAcrossInputs(t *testing.T) {
	sel := Selection{
		AutoOfficers:   []OfficerRef{{PositionNumber: "P1"}, {PositionNumber: "P1"}, {PositionNumber: " "}},
		ManualOfficers: []OfficerRef{{PositionNumber: "P1"}, {PositionNumber: "P2"}, {PositionNumber: "P2"}},
	}
	assert.Equal(t, []string{"P1", "P2"}, Compose(sel).IncludedPositions())
}

func TestCompose_RemovedBeforeAddStaysRemoved(t *testing.T) {
	r := Compose(Selection{RemovedPositions: []string{"P9"}})
	r.Add(OfficerRef{PositionNumber: "P9"})
	assert.Empty(t, r.Included())

	r.Restore("P9")
	assert.Equal(t, []string{"P9"}, r.IncludedPositions())
}

func TestCheckSubmission(t *testing.T) {
	r := Compose(Selection{AutoOfficers: []OfficerRef{{PositionNumber: "P1", UnitCode: "U1"}}})

	assert.NoError(t, CheckSubmission(r, []string{"U1", "U2"}, "U2"))

	err := CheckSubmission(r, []string{"U1"}, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "head_unit_code")

	err = CheckSubmission(r, []string{"U1"}, "U3")
	assert.ErrorIs(t, err, ErrValidation)

	// Manual-only selection: officers' units are the candidates.
	assert.NoError(t, CheckSubmission(r, nil, "U1"))

	empty := Compose(Selection{AutoOfficers: []OfficerRef{{PositionNumber: "P1"}}, RemovedPositions: []string{"P1"}})
	err = CheckSubmission(empty, []string{"U1"}, "U1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHeadUnitCandidates(t *testing.T) {
	inc := []Entry{{OfficerRef: OfficerRef{UnitCode: "U3"}}, {OfficerRef: OfficerRef{UnitCode: "U3"}}, {OfficerRef: OfficerRef{UnitCode: "U4"}}}
	assert.Equal(t, []string{"U1", "U2"}, HeadUnitCandidates([]string{"U1", " U2", "U1"}, inc))
	assert.Equal(t, []string{"U3", "U4"}, HeadUnitCandidates(nil, inc))
}
