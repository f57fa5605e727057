package technician_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/hemotask/internal/domain/assignment"
	. "github.com/alanyang/hemotask/internal/domain/technician"
)

func TestTechnician_Predicates(t *testing.T) {
	tc := New("T1", "Falcon", []string{"plumbing", "hvac"}, ShiftDay)

	assert.True(t, tc.IsOnShift())
	assert.True(t, tc.HasSkill("hvac"))
	assert.False(t, tc.HasSkill("electric"))
	assert.True(t, tc.CanAcceptTask(3))

	tc.ActiveTasks = 3
	assert.False(t, tc.CanAcceptTask(3))

	tc.Shift = ShiftOff
	assert.False(t, tc.IsOnShift())
}

func TestNew_NilSkillsBecomeEmpty(t *testing.T) {
	tc := New("T1", "Falcon", nil, ShiftNight)
	assert.NotNil(t, tc.Skills)
	assert.Empty(t, tc.Skills)
	assert.False(t, tc.CreatedAt.IsZero())
}

func TestShift_Valid(t *testing.T) {
	assert.True(t, ShiftDay.Valid())
	assert.True(t, ShiftNight.Valid())
	assert.True(t, ShiftOff.Valid())
	assert.False(t, Shift("Off").Valid())
	assert.False(t, Shift("").Valid())
}

func TestEligible(t *testing.T) {
	techs := []Technician{
		{ID: "off", Skills: []string{"plumbing"}, Shift: ShiftOff},
		{ID: "a", Skills: []string{"plumbing"}, Shift: ShiftDay, ActiveTasks: 2},
		{ID: "noskill", Skills: []string{"electric"}, Shift: ShiftDay},
		{ID: "full", Skills: []string{"plumbing"}, Shift: ShiftNight, ActiveTasks: 3},
		{ID: "b", Skills: []string{"hvac", "plumbing"}, Shift: ShiftNight},
	}

	got := Eligible(techs, "plumbing", 3)

	ids := make([]string, len(got))
	for i, tc := range got {
		ids[i] = tc.ID
	}
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Len(t, techs, 5, "input must not be modified")
}

func TestEligible_NoneLeft(t *testing.T) {
	got := Eligible([]Technician{{ID: "x", Shift: ShiftOff}}, "hvac", 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCandidates(t *testing.T) {
	techs := []Technician{
		{ID: "a", Skills: []string{"hvac"}, ActiveTasks: 2},
		{ID: "b", ActiveTasks: -1},
	}

	got := Candidates(techs)

	assert.Equal(t, []assignment.Technician{
		{ID: "a", Skills: []string{"hvac"}, ActiveTasks: 2},
		{ID: "b", Skills: nil, ActiveTasks: 0},
	}, got)

	got[0].Skills[0] = "changed"
	assert.Equal(t, "hvac", techs[0].Skills[0], "candidate skills must be a copy")
}

func TestShiftAuditAction(t *testing.T) {
	assert.Equal(t, "SHIFT_CHANGED_TO_OFF", ShiftAuditAction(ShiftOff))
	assert.Equal(t, "SHIFT_CHANGED_TO_NIGHT", ShiftAuditAction(ShiftNight))
}
