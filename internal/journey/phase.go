// Package journey holds the pure derivation logic for the guided
// career journey: mapping completion flags to the current phase and
// producing the recommended next-action task list. Nothing in this
// package touches the database or the network.
package journey

// Journey phases.
const (
	PhaseIntrospection = 1
	PhaseExploration   = 2
	PhaseReflection    = 3
)

// Flags is the full set of completion markers the journey derives
// from. Ikigai completion is an explicit stored boolean; the two
// research flags mean "an artifact row exists", independent of its
// age, so regenerating an artifact never un-completes a phase.
type Flags struct {
	IkigaiCompleted           bool `json:"ikigaiCompleted"`
	IndustryResearchCompleted bool `json:"industryResearchCompleted"`
	CareerRoadmapCompleted    bool `json:"careerRoadmapCompleted"`
	ProjectSelected           bool `json:"projectSelected"`
	LearningPlanCreated       bool `json:"learningPlanCreated"`
	PublicBuildingStarted     bool `json:"publicBuildingStarted"`
}

// Phase-1 percent weights. They sum to 100.
const (
	ikigaiWeight   = 33
	researchWeight = 33
	roadmapWeight  = 34
)

// ComputePhase maps completion flags to the current phase and the
// percent complete within that phase.
//
// Phase 2 percent is split evenly between the learning plan and
// building in public; selecting a project contributes nothing once
// phase 1 is satisfied. Phases 3 (Reflection) and 4 (Action) unlock
// together and have no completion condition, so the calculator stops
// at phase 3 with zero percent.
func ComputePhase(f Flags) (phase int, percent int) {
	if !f.IkigaiCompleted || !f.IndustryResearchCompleted || !f.CareerRoadmapCompleted {
		percent := 0
		if f.IkigaiCompleted {
			percent += ikigaiWeight
		}
		if f.IndustryResearchCompleted {
			percent += researchWeight
		}
		if f.CareerRoadmapCompleted {
			percent += roadmapWeight
		}
		return PhaseIntrospection, percent
	}

	if !f.LearningPlanCreated || !f.PublicBuildingStarted {
		percent := 0
		if f.LearningPlanCreated {
			percent += 50
		}
		if f.PublicBuildingStarted {
			percent += 50
		}
		return PhaseExploration, percent
	}

	return PhaseReflection, 0
}
