package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePhaseNewUser(t *testing.T) {
	phase, percent := ComputePhase(Flags{})
	assert.Equal(t, 1, phase)
	assert.Equal(t, 0, percent)
}

func TestComputePhasePartialIntrospection(t *testing.T) {
	phase, percent := ComputePhase(Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
	})
	assert.Equal(t, 1, phase)
	assert.Equal(t, 66, percent)
}

func TestComputePhaseRoadmapOnly(t *testing.T) {
	phase, percent := ComputePhase(Flags{CareerRoadmapCompleted: true})
	assert.Equal(t, 1, phase)
	assert.Equal(t, 34, percent)
}

func TestComputePhaseEnterExploration(t *testing.T) {
	// project selection alone contributes nothing to phase-2 percent
	phase, percent := ComputePhase(Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
		CareerRoadmapCompleted:    true,
		ProjectSelected:           true,
	})
	assert.Equal(t, 2, phase)
	assert.Equal(t, 0, percent)
}

func TestComputePhaseHalfExploration(t *testing.T) {
	phase, percent := ComputePhase(Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
		CareerRoadmapCompleted:    true,
		LearningPlanCreated:       true,
	})
	assert.Equal(t, 2, phase)
	assert.Equal(t, 50, percent)
}

func TestComputePhaseReflection(t *testing.T) {
	phase, percent := ComputePhase(Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
		CareerRoadmapCompleted:    true,
		ProjectSelected:           true,
		LearningPlanCreated:       true,
		PublicBuildingStarted:     true,
	})
	assert.Equal(t, 3, phase)
	assert.Equal(t, 0, percent)
}

func TestComputePhaseAllCombinations(t *testing.T) {
	// phase is always in 1..3, percent in 0..100, and phase 1 is
	// returned iff any phase-1 prerequisite is missing
	for mask := 0; mask < 64; mask++ {
		f := Flags{
			IkigaiCompleted:           mask&1 != 0,
			IndustryResearchCompleted: mask&2 != 0,
			CareerRoadmapCompleted:    mask&4 != 0,
			ProjectSelected:           mask&8 != 0,
			LearningPlanCreated:       mask&16 != 0,
			PublicBuildingStarted:     mask&32 != 0,
		}
		phase, percent := ComputePhase(f)
		assert.GreaterOrEqual(t, phase, 1)
		assert.LessOrEqual(t, phase, 3)
		assert.GreaterOrEqual(t, percent, 0)
		assert.LessOrEqual(t, percent, 100)

		phase1Expected := !f.IkigaiCompleted || !f.IndustryResearchCompleted || !f.CareerRoadmapCompleted
		assert.Equal(t, phase1Expected, phase == 1, "flags %+v", f)

		// deterministic: same input, same output
		phase2, percent2 := ComputePhase(f)
		assert.Equal(t, phase, phase2)
		assert.Equal(t, percent, percent2)
	}
}
