package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTasksNeverExceedsCap(t *testing.T) {
	for mask := 0; mask < 64; mask++ {
		f := Flags{
			IkigaiCompleted:           mask&1 != 0,
			IndustryResearchCompleted: mask&2 != 0,
			CareerRoadmapCompleted:    mask&4 != 0,
			ProjectSelected:           mask&8 != 0,
			LearningPlanCreated:       mask&16 != 0,
			PublicBuildingStarted:     mask&32 != 0,
		}
		phase, _ := ComputePhase(f)
		tasks := ComputeTasks(phase, f)
		assert.LessOrEqual(t, len(tasks), MaxTasks)
		assert.NotEmpty(t, tasks)
	}
}

func TestComputeTasksNewUser(t *testing.T) {
	tasks := ComputeTasks(PhaseIntrospection, Flags{})
	require.Len(t, tasks, 4)

	// insertion order, not priority order
	assert.Equal(t, "complete-ikigai", tasks[0].ID)
	assert.Equal(t, "run-industry-research", tasks[1].ID)
	assert.Equal(t, "create-career-roadmap", tasks[2].ID)
	assert.Equal(t, "read-industry-news", tasks[3].ID)
	assert.Equal(t, PriorityLow, tasks[3].Priority)
}

func TestComputeTasksIkigaiDoneAddsReview(t *testing.T) {
	tasks := ComputeTasks(PhaseIntrospection, Flags{IkigaiCompleted: true})
	require.Len(t, tasks, 4)
	assert.Equal(t, "run-industry-research", tasks[0].ID)
	assert.Equal(t, "create-career-roadmap", tasks[1].ID)
	assert.Equal(t, "review-ikigai", tasks[2].ID)
	// the news task fills the last slot
	assert.Equal(t, "read-industry-news", tasks[3].ID)
}

func TestComputeTasksExploration(t *testing.T) {
	f := Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
		CareerRoadmapCompleted:    true,
		ProjectSelected:           true,
	}
	tasks := ComputeTasks(PhaseExploration, f)
	require.Len(t, tasks, 4)
	assert.Equal(t, "create-learning-plan", tasks[0].ID)
	assert.Equal(t, "start-building-public", tasks[1].ID)
	assert.Equal(t, "daily-learning", tasks[2].ID)
	assert.Equal(t, "read-industry-news", tasks[3].ID)
}

func TestComputeTasksReflectionDropsOverflow(t *testing.T) {
	f := Flags{
		IkigaiCompleted:           true,
		IndustryResearchCompleted: true,
		CareerRoadmapCompleted:    true,
		ProjectSelected:           true,
		LearningPlanCreated:       true,
		PublicBuildingStarted:     true,
	}
	tasks := ComputeTasks(PhaseReflection, f)
	require.Len(t, tasks, 4)
	// the four standing reflection/action tasks fill the quota; the
	// news task is silently dropped
	assert.Equal(t, "write-reflection", tasks[0].ID)
	assert.Equal(t, "reach-out-mentor", tasks[1].ID)
	assert.Equal(t, "submit-application", tasks[2].ID)
	assert.Equal(t, "send-outreach", tasks[3].ID)
	for _, task := range tasks {
		assert.NotEqual(t, "read-industry-news", task.ID)
	}
}

func TestComputeTasksStableIDs(t *testing.T) {
	f := Flags{IkigaiCompleted: true}
	first := ComputeTasks(PhaseIntrospection, f)
	second := ComputeTasks(PhaseIntrospection, f)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}
