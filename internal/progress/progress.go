// Package progress derives display progress values from entity snapshots.
// All functions are pure: they take the current snapshot and compute, with no
// store access and no side effects, so they can run on every render.
package progress

import (
	"math"

	"github.com/kestrelapps/lodestar/internal/models"
)

// MilestoneProgress returns the completion percentage of a milestone given
// the task snapshot. A milestone with no tasks falls back to its own
// completed flag (100 or 0) rather than an average; otherwise the result is
// the rounded share of completed tasks.
func MilestoneProgress(tasks []models.Task, milestoneID string, completed bool) int {
	var total, done int
	for _, t := range tasks {
		if t.MilestoneID != milestoneID {
			continue
		}
		total++
		if t.Completed {
			done++
		}
	}

	if total == 0 {
		if completed {
			return 100
		}
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// GoalProgress returns the weighted overall progress of a goal. Each
// milestone contributes its Percentage weight scaled by its own completion
// fraction, supplied by progressOf. Weights are not required to sum to 100:
// over-allocation is clamped at 100, under-allocation yields a goal that
// never reaches 100 even when every milestone is complete.
func GoalProgress(milestones []models.Milestone, goalID string, progressOf func(milestoneID string) int) int {
	var sum float64
	found := false
	for _, m := range milestones {
		if m.GoalID != goalID {
			continue
		}
		found = true
		sum += float64(m.Percentage) * float64(progressOf(m.ID)) / 100
	}
	if !found {
		return 0
	}

	if sum > 100 {
		sum = 100
	}
	if sum < 0 {
		sum = 0
	}
	return int(math.Round(sum))
}

// ForGoal computes a goal's progress directly from milestone and task
// snapshots, wiring MilestoneProgress in as the per-milestone fraction.
func ForGoal(milestones []models.Milestone, tasks []models.Task, goalID string) int {
	byID := make(map[string]models.Milestone)
	for _, m := range milestones {
		byID[m.ID] = m
	}
	return GoalProgress(milestones, goalID, func(milestoneID string) int {
		return MilestoneProgress(tasks, milestoneID, byID[milestoneID].Completed)
	})
}
