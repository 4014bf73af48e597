package journey

// Task priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// MaxTasks caps the recommended list; later rules are silently
// dropped once earlier ones fill the quota.
const MaxTasks = 4

// Task is one recommended next action. IDs are stable across calls so
// the user's completed-task overlay can be keyed by them.
type Task struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	Priority         string `json:"priority"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	TargetPhase      int    `json:"targetPhase"`
	NavigationTarget string `json:"navigationTarget,omitempty"`
}

// ComputeTasks derives the recommended next actions for the current
// phase. Rules run top to bottom and tasks keep insertion order; the
// result is never re-sorted by priority. The completed-task overlay is
// applied by the caller and never changes this list.
func ComputeTasks(phase int, f Flags) []Task {
	var tasks []Task

	if phase == PhaseIntrospection {
		if !f.IkigaiCompleted {
			tasks = append(tasks, Task{
				ID:               "complete-ikigai",
				Label:            "Complete your Ikigai discovery",
				Priority:         PriorityHigh,
				EstimatedMinutes: 30,
				TargetPhase:      PhaseIntrospection,
				NavigationTarget: "/ikigai",
			})
		}
		if !f.IndustryResearchCompleted {
			tasks = append(tasks, Task{
				ID:               "run-industry-research",
				Label:            "Generate your industry research",
				Priority:         PriorityHigh,
				EstimatedMinutes: 15,
				TargetPhase:      PhaseIntrospection,
				NavigationTarget: "/research",
			})
		}
		if !f.CareerRoadmapCompleted {
			tasks = append(tasks, Task{
				ID:               "create-career-roadmap",
				Label:            "Create your career roadmap",
				Priority:         PriorityHigh,
				EstimatedMinutes: 20,
				TargetPhase:      PhaseIntrospection,
				NavigationTarget: "/roadmap",
			})
		}
		if f.IkigaiCompleted {
			tasks = append(tasks, Task{
				ID:               "review-ikigai",
				Label:            "Review your Ikigai insights",
				Priority:         PriorityMedium,
				EstimatedMinutes: 10,
				TargetPhase:      PhaseIntrospection,
				NavigationTarget: "/ikigai",
			})
		}
	}

	if phase == PhaseExploration {
		if !f.ProjectSelected {
			tasks = append(tasks, Task{
				ID:               "select-project",
				Label:            "Choose a portfolio project",
				Priority:         PriorityHigh,
				EstimatedMinutes: 20,
				TargetPhase:      PhaseExploration,
				NavigationTarget: "/projects",
			})
		}
		if !f.LearningPlanCreated {
			tasks = append(tasks, Task{
				ID:               "create-learning-plan",
				Label:            "Build a learning plan for your project",
				Priority:         PriorityHigh,
				EstimatedMinutes: 15,
				TargetPhase:      PhaseExploration,
				NavigationTarget: "/learning-plan",
			})
		}
		if !f.PublicBuildingStarted {
			tasks = append(tasks, Task{
				ID:               "start-building-public",
				Label:            "Start building in public",
				Priority:         PriorityMedium,
				EstimatedMinutes: 25,
				TargetPhase:      PhaseExploration,
				NavigationTarget: "/building",
			})
		}
		if f.ProjectSelected {
			tasks = append(tasks, Task{
				ID:               "daily-learning",
				Label:            "Spend 30 minutes on your learning plan",
				Priority:         PriorityMedium,
				EstimatedMinutes: 30,
				TargetPhase:      PhaseExploration,
			})
		}
	}

	if phase >= PhaseReflection {
		tasks = append(tasks,
			Task{
				ID:               "write-reflection",
				Label:            "Write a reflection journal entry",
				Priority:         PriorityHigh,
				EstimatedMinutes: 15,
				TargetPhase:      PhaseReflection,
				NavigationTarget: "/journal",
			},
			Task{
				ID:               "reach-out-mentor",
				Label:            "Reach out to a mentor or peer",
				Priority:         PriorityMedium,
				EstimatedMinutes: 20,
				TargetPhase:      PhaseReflection,
			},
			Task{
				ID:               "submit-application",
				Label:            "Apply to one matching role",
				Priority:         PriorityHigh,
				EstimatedMinutes: 45,
				TargetPhase:      4,
				NavigationTarget: "/outreach",
			},
			Task{
				ID:               "send-outreach",
				Label:            "Send one outreach message",
				Priority:         PriorityMedium,
				EstimatedMinutes: 15,
				TargetPhase:      4,
				NavigationTarget: "/outreach",
			},
		)
	}

	tasks = append(tasks, Task{
		ID:               "read-industry-news",
		Label:            "Read industry news for 10 minutes",
		Priority:         PriorityLow,
		EstimatedMinutes: 10,
		TargetPhase:      phase,
	})

	if len(tasks) > MaxTasks {
		tasks = tasks[:MaxTasks]
	}
	return tasks
}
