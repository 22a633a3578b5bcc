package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/flowcast/internal/db"
	"github.com/terraincognita07/flowcast/internal/logger"
	"github.com/terraincognita07/flowcast/internal/services"
	"gorm.io/gorm"
)

// RunRebuildCyclesCommand re-derives the stored cycles of one user, or of every
// user when email is empty, from their daily logs.
func RunRebuildCyclesCommand(ctx context.Context, database *gorm.DB, email string, prediction services.PredictionConfig, out io.Writer, log *logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}

	store := db.NewStore(database, nil)
	repos := store.Repositories()
	dayService := services.NewDayService(repos.DailyLogs, repos.Users, store, prediction)

	userIDs, err := rebuildTargets(ctx, repos, email)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		cycles, err := dayService.RebuildCycles(ctx, userID)
		if err != nil {
			return fmt.Errorf("rebuild cycles for user %d: %w", userID, err)
		}
		log.Info("cycles rebuilt", "user_id", userID, "cycles", len(cycles))
		fmt.Fprintf(out, "user %d: %d cycles\n", userID, len(cycles))
	}
	return nil
}

func rebuildTargets(ctx context.Context, repos *db.Repositories, email string) ([]uint, error) {
	if email == "" {
		ids, err := repos.Users.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return ids, nil
	}

	normalized := services.NormalizeAuthEmail(email)
	if normalized == "" {
		return nil, fmt.Errorf("invalid email address %q", email)
	}
	user, err := repos.Users.FindByNormalizedEmail(ctx, normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s not found", normalized)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return []uint{user.ID}, nil
}
