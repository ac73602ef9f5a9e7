package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/cyclekeeper/internal/db"
	"github.com/terraincognita07/cyclekeeper/internal/services"
	"gorm.io/gorm"
)

// RunRecomputeMetricsCommand re-derives cycle and period lengths across the
// user's whole history and reports how many cycles changed.
func RunRecomputeMetricsCommand(database *gorm.DB, userID uint, out io.Writer) error {
	if database == nil {
		return errors.New("database is required")
	}
	if userID == 0 {
		return errors.New("user id is required")
	}
	if out == nil {
		out = io.Discard
	}

	repositories := db.NewRepositories(database)
	service := services.NewCycleService(repositories.Cycles, repositories.Profiles)

	changed, err := service.RecomputeUserHistory(userID)
	if err != nil {
		return fmt.Errorf("recompute metrics for user %d: %w", userID, err)
	}

	if changed == 0 {
		fmt.Fprintf(out, "Cycle metrics for user %d are already up to date.\n", userID)
		return nil
	}
	fmt.Fprintf(out, "Recomputed metrics for user %d: %d cycle(s) updated.\n", userID, changed)
	return nil
}
