package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBagDeduplicatesByPositionAndCode(t *testing.T) {
	bag := NewBag()
	pos := Position{File: "a.py", Line: 3, Column: 1}
	bag.Add(New(PhaseChecker, pos, ErrNameUndefined, "x"))
	bag.Add(New(PhaseChecker, pos, ErrNameUndefined, "x"))
	assert.Equal(t, 1, bag.Len())
}

func TestBagAllowsDistinctCodesAtSamePosition(t *testing.T) {
	bag := NewBag()
	pos := Position{File: "a.py", Line: 3, Column: 1}
	bag.Add(New(PhaseChecker, pos, ErrNameUndefined, "x"))
	bag.Add(New(PhaseChecker, pos, ErrIncompatibleAssignment, "int", "str"))
	assert.Equal(t, 2, bag.Len())
}

func TestAllSortsByPositionThenCode(t *testing.T) {
	bag := NewBag()
	bag.Add(New(PhaseChecker, Position{File: "b.py", Line: 1, Column: 1}, ErrNameUndefined, "x"))
	bag.Add(New(PhaseChecker, Position{File: "a.py", Line: 5, Column: 1}, ErrNameUndefined, "y"))
	bag.Add(New(PhaseChecker, Position{File: "a.py", Line: 2, Column: 1}, ErrNameUndefined, "z"))

	all := bag.All()
	require.Len(t, all, 3)
	assert.Equal(t, "a.py", all[0].Pos.File)
	assert.Equal(t, 2, all[0].Pos.Line)
	assert.Equal(t, "a.py", all[1].Pos.File)
	assert.Equal(t, 5, all[1].Pos.Line)
	assert.Equal(t, "b.py", all[2].Pos.File)
}

func TestDiagnosticErrorFormatsTemplate(t *testing.T) {
	d := New(PhaseChecker, Position{File: "m.py", Line: 4, Column: 2}, ErrIncompatibleAssignment, "int", "str")
	assert.Equal(t, `m.py:4:2: error [incompatible-assignment]: incompatible types in assignment: expected int, got str`, d.Error())
}

func TestHasErrorsReflectsAccumulation(t *testing.T) {
	bag := NewBag()
	assert.False(t, bag.HasErrors())
	bag.Add(New(PhaseChecker, Position{File: "m.py"}, ErrNameUndefined, "x"))
	assert.True(t, bag.HasErrors())
}
