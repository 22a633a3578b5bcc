package db

import (
	"context"
	"fmt"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Store is the per-user persistence facade. Every call names its user.
type Store struct {
	database *gorm.DB
	repos    *Repositories
	notifier *ChangeNotifier
}

func NewStore(database *gorm.DB, notifier *ChangeNotifier) *Store {
	if notifier == nil {
		notifier = NewChangeNotifier(0)
	}
	return &Store{database: database, repos: NewRepositories(database), notifier: notifier}
}

func (store *Store) Repositories() *Repositories {
	return store.repos
}

func (store *Store) Notifier() *ChangeNotifier {
	return store.notifier
}

// Load reads logs, cycles and settings concurrently.
func (store *Store) Load(ctx context.Context, userID uint) (models.Snapshot, error) {
	var snapshot models.Snapshot
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logs, err := store.repos.DailyLogs.ListByUser(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load logs: %w", err)
		}
		snapshot.Logs = logs
		return nil
	})
	group.Go(func() error {
		cycles, err := store.repos.Cycles.ListByUser(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load cycles: %w", err)
		}
		snapshot.Cycles = cycles
		return nil
	})
	group.Go(func() error {
		user, err := store.repos.Users.FindByID(groupCtx, userID)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		snapshot.Settings = user.CycleSettings()
		return nil
	})

	if err := group.Wait(); err != nil {
		return models.Snapshot{}, err
	}
	return snapshot, nil
}

func (store *Store) SaveLogs(ctx context.Context, userID uint, logs []models.DailyLog) error {
	if err := store.repos.DailyLogs.SaveLogs(ctx, userID, logs); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	store.publish(userID, ChangeLogs)
	return nil
}

func (store *Store) SaveCycles(ctx context.Context, userID uint, cycles []models.Cycle) error {
	if err := store.repos.Cycles.ReplaceForUser(ctx, userID, cycles); err != nil {
		return fmt.Errorf("save cycles: %w", err)
	}
	store.publish(userID, ChangeCycles)
	return nil
}

func (store *Store) SaveSettings(ctx context.Context, userID uint, settings models.CycleSettings) error {
	if err := store.repos.Users.UpdateCycleSettings(ctx, userID, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	store.publish(userID, ChangeSettings)
	return nil
}

// SaveDay upserts one log and replaces the user's cycles with segment's output in
// the same transaction.
func (store *Store) SaveDay(ctx context.Context, entry models.DailyLog, segment models.CycleSegmenter) ([]models.Cycle, error) {
	var cycles []models.Cycle
	err := store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := NewRepositories(tx)
		if err := repos.DailyLogs.Upsert(ctx, &entry); err != nil {
			return fmt.Errorf("save log: %w", err)
		}
		rebuilt, err := replaceSegmentedCycles(ctx, repos, entry.UserID, segment)
		cycles = rebuilt
		return err
	})
	if err != nil {
		return nil, err
	}
	store.publish(entry.UserID, ChangeLogs, ChangeCycles)
	return cycles, nil
}

// DeleteDay removes one log and resegments in the same transaction.
func (store *Store) DeleteDay(ctx context.Context, userID uint, day dates.Date, segment models.CycleSegmenter) (bool, []models.Cycle, error) {
	var (
		deleted bool
		cycles  []models.Cycle
	)
	err := store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := NewRepositories(tx)
		removed, err := repos.DailyLogs.DeleteByDay(ctx, userID, day)
		if err != nil {
			return fmt.Errorf("delete log: %w", err)
		}
		deleted = removed
		rebuilt, err := replaceSegmentedCycles(ctx, repos, userID, segment)
		cycles = rebuilt
		return err
	})
	if err != nil {
		return false, nil, err
	}
	if deleted {
		store.publish(userID, ChangeLogs)
	}
	store.publish(userID, ChangeCycles)
	return deleted, cycles, nil
}

// RebuildCycles resegments the stored logs without touching them.
func (store *Store) RebuildCycles(ctx context.Context, userID uint, segment models.CycleSegmenter) ([]models.Cycle, error) {
	var cycles []models.Cycle
	err := store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rebuilt, err := replaceSegmentedCycles(ctx, NewRepositories(tx), userID, segment)
		cycles = rebuilt
		return err
	})
	if err != nil {
		return nil, err
	}
	store.publish(userID, ChangeCycles)
	return cycles, nil
}

// ClearAllData removes logs and cycles and resets settings to the defaults.
func (store *Store) ClearAllData(ctx context.Context, userID uint) error {
	if err := store.repos.Users.ClearAllData(ctx, userID); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	store.publish(userID, ChangeLogs, ChangeCycles, ChangeSettings)
	return nil
}

func (store *Store) DeleteAccount(ctx context.Context, userID uint) error {
	if err := store.repos.Users.DeleteAccount(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	store.publish(userID, ChangeAccount)
	return nil
}

func (store *Store) publish(userID uint, kinds ...ChangeKind) {
	for _, kind := range kinds {
		store.notifier.Publish(Change{UserID: userID, Kind: kind})
	}
}

func replaceSegmentedCycles(ctx context.Context, repos *Repositories, userID uint, segment models.CycleSegmenter) ([]models.Cycle, error) {
	logs, err := repos.DailyLogs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	cycles := segment(logs)
	if cycles == nil {
		cycles = []models.Cycle{}
	}
	if err := repos.Cycles.ReplaceForUser(ctx, userID, cycles); err != nil {
		return nil, fmt.Errorf("save cycles: %w", err)
	}
	return cycles, nil
}
