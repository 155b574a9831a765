package system

import (
	"fmt"
	"time"

	"github.com/kestrelapps/lodestar/internal/bridge"
	"github.com/kestrelapps/lodestar/internal/cli"
	"github.com/kestrelapps/lodestar/internal/constants"
	"github.com/kestrelapps/lodestar/internal/keyring"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 3: Referential integrity (only if DB is reachable)
	if dbReachable {
		if err := checkReferences(ctx); err != nil {
			fmt.Printf("❌ Referential integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Referential integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Referential integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Milestone weights (warning only)
	if dbReachable {
		if warnings := checkMilestoneWeights(ctx); len(warnings) > 0 {
			fmt.Printf("⚠ Milestone weights: WARNING\n")
			for _, w := range warnings {
				fmt.Printf("   %s\n", w)
			}
		} else {
			fmt.Printf("✓ Milestone weights: OK\n")
		}
	}

	// Check 5: OS keyring
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: not available on this system\n")
	}

	// Check 6: Calendar bridge (warning only, the bridge is optional)
	if _, err := bridge.Connect(constants.CalendarLockfileName, constants.CalendarBridgeProcess); err != nil {
		fmt.Printf("⚠ Calendar bridge: %v\n", err)
	} else {
		fmt.Printf("✓ Calendar bridge: OK\n")
	}

	// Check 7: Scheduler bridge (warning only)
	if _, err := bridge.Connect(constants.SchedulerLockfileName, constants.SchedulerBridgeProcess); err != nil {
		fmt.Printf("⚠ Scheduler bridge: %v\n", err)
	} else {
		fmt.Printf("✓ Scheduler bridge: OK\n")
	}

	// Check 8: Clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	count, err := m.Migrate(nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%d migration(s) were pending and have been applied", count)
	}
	return nil
}

// checkReferences scans for records pointing at parents that no longer exist.
func checkReferences(ctx *cli.Context) error {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}
	goalIDs := make(map[string]bool, len(goals))
	for _, g := range goals {
		goalIDs[g.ID] = true
	}

	milestones, err := ctx.Store.GetAllMilestones()
	if err != nil {
		return err
	}
	milestoneIDs := make(map[string]bool, len(milestones))
	orphans := 0
	for _, m := range milestones {
		milestoneIDs[m.ID] = true
		if !goalIDs[m.GoalID] {
			orphans++
		}
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.MilestoneID != "" && !milestoneIDs[t.MilestoneID] {
			orphans++
		}
	}

	if orphans > 0 {
		return fmt.Errorf("%d record(s) reference a missing parent", orphans)
	}
	return nil
}

// checkMilestoneWeights flags goals whose milestone weights stray far from
// 100. Over-allocation is clamped at read time but usually indicates a
// planning mistake.
func checkMilestoneWeights(ctx *cli.Context) []string {
	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return []string{err.Error()}
	}
	var warnings []string
	for _, g := range goals {
		milestones, err := ctx.Store.GetMilestonesForGoal(g.ID)
		if err != nil || len(milestones) == 0 {
			continue
		}
		total := 0
		for _, m := range milestones {
			total += m.Percentage
		}
		if total > 100 {
			warnings = append(warnings, fmt.Sprintf("goal %q: milestone weights sum to %d (over 100)", g.Title, total))
		}
	}
	return warnings
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %v, which is implausible", now)
	}
	return nil
}
