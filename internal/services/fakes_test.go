package services

import (
	"context"
	"sort"
	"strings"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
	"gorm.io/gorm"
)

// memoryStore backs every repository interface the services need.
type memoryStore struct {
	users          map[uint]models.User
	logs           map[uint]map[string]models.DailyLog
	cycles         map[uint][]models.Cycle
	nextUserID     uint
	saveCycleCalls int
	saveCyclesErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[uint]models.User),
		logs:   make(map[uint]map[string]models.DailyLog),
		cycles: make(map[uint][]models.Cycle),
	}
}

func (store *memoryStore) addUser(email string, settings models.CycleSettings) models.User {
	store.nextUserID++
	user := models.User{
		ID:           store.nextUserID,
		Email:        email,
		CycleLength:  settings.AvgCycleLength,
		PeriodLength: settings.AvgPeriodLength,
	}
	store.users[user.ID] = user
	return user
}

func (store *memoryStore) FindByID(_ context.Context, userID uint) (models.User, error) {
	user, ok := store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (store *memoryStore) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range store.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (store *memoryStore) ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error) {
	_, err := store.FindByNormalizedEmail(ctx, email)
	return err == nil, nil
}

func (store *memoryStore) Create(_ context.Context, user *models.User) error {
	store.nextUserID++
	user.ID = store.nextUserID
	store.users[user.ID] = *user
	return nil
}

func (store *memoryStore) UpdatePassword(_ context.Context, userID uint, passwordHash string, mustChangePassword bool) error {
	user, ok := store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	store.users[userID] = user
	return nil
}

func (store *memoryStore) ListByUser(_ context.Context, userID uint) ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0, len(store.logs[userID]))
	for _, entry := range store.logs[userID] {
		logs = append(logs, entry)
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Day.Before(logs[j].Day) })
	return logs, nil
}

func (store *memoryStore) ListByUserRange(ctx context.Context, userID uint, from *dates.Date, to *dates.Date) ([]models.DailyLog, error) {
	all, _ := store.ListByUser(ctx, userID)
	filtered := make([]models.DailyLog, 0, len(all))
	for _, entry := range all {
		if inOptionalRange(entry.Day, from, to) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (store *memoryStore) FindByDay(_ context.Context, userID uint, day dates.Date) (models.DailyLog, bool, error) {
	entry, ok := store.logs[userID][day.String()]
	return entry, ok, nil
}

func (store *memoryStore) Upsert(_ context.Context, entry *models.DailyLog) error {
	if store.logs[entry.UserID] == nil {
		store.logs[entry.UserID] = make(map[string]models.DailyLog)
	}
	store.logs[entry.UserID][entry.Day.String()] = *entry
	return nil
}

func (store *memoryStore) DeleteByDay(_ context.Context, userID uint, day dates.Date) (bool, error) {
	if _, ok := store.logs[userID][day.String()]; !ok {
		return false, nil
	}
	delete(store.logs[userID], day.String())
	return true, nil
}

func (store *memoryStore) SaveCycles(_ context.Context, userID uint, cycles []models.Cycle) error {
	store.saveCycleCalls++
	if store.saveCyclesErr != nil {
		return store.saveCyclesErr
	}
	store.cycles[userID] = append([]models.Cycle(nil), cycles...)
	return nil
}

// SaveDay mirrors the transactional store: a failed cycle save restores the log.
func (store *memoryStore) SaveDay(ctx context.Context, entry models.DailyLog, segment models.CycleSegmenter) ([]models.Cycle, error) {
	previous, existed := store.logs[entry.UserID][entry.Day.String()]
	if err := store.Upsert(ctx, &entry); err != nil {
		return nil, err
	}
	cycles, err := store.resegment(ctx, entry.UserID, segment)
	if err != nil {
		if existed {
			store.logs[entry.UserID][entry.Day.String()] = previous
		} else {
			delete(store.logs[entry.UserID], entry.Day.String())
		}
		return nil, err
	}
	return cycles, nil
}

func (store *memoryStore) DeleteDay(ctx context.Context, userID uint, day dates.Date, segment models.CycleSegmenter) (bool, []models.Cycle, error) {
	previous, existed := store.logs[userID][day.String()]
	deleted, _ := store.DeleteByDay(ctx, userID, day)
	cycles, err := store.resegment(ctx, userID, segment)
	if err != nil {
		if existed {
			store.logs[userID][day.String()] = previous
		}
		return false, nil, err
	}
	return deleted, cycles, nil
}

func (store *memoryStore) RebuildCycles(ctx context.Context, userID uint, segment models.CycleSegmenter) ([]models.Cycle, error) {
	return store.resegment(ctx, userID, segment)
}

func (store *memoryStore) resegment(ctx context.Context, userID uint, segment models.CycleSegmenter) ([]models.Cycle, error) {
	logs, _ := store.ListByUser(ctx, userID)
	cycles := segment(logs)
	if cycles == nil {
		cycles = []models.Cycle{}
	}
	if err := store.SaveCycles(ctx, userID, cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

func (store *memoryStore) SaveSettings(_ context.Context, userID uint, settings models.CycleSettings) error {
	user, ok := store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.CycleLength = settings.AvgCycleLength
	user.PeriodLength = settings.AvgPeriodLength
	store.users[userID] = user
	return nil
}

func (store *memoryStore) ClearAllData(_ context.Context, userID uint) error {
	delete(store.logs, userID)
	delete(store.cycles, userID)
	return nil
}

func (store *memoryStore) DeleteAccount(ctx context.Context, userID uint) error {
	_ = store.ClearAllData(ctx, userID)
	delete(store.users, userID)
	return nil
}

func (store *memoryStore) Load(ctx context.Context, userID uint) (models.Snapshot, error) {
	user, err := store.FindByID(ctx, userID)
	if err != nil {
		return models.Snapshot{}, err
	}
	logs, _ := store.ListByUser(ctx, userID)
	return models.Snapshot{
		Logs:     logs,
		Cycles:   append([]models.Cycle(nil), store.cycles[userID]...),
		Settings: user.CycleSettings(),
	}, nil
}

func defaultSettings() models.CycleSettings {
	return models.CycleSettings{AvgCycleLength: models.DefaultCycleLength, AvgPeriodLength: models.DefaultPeriodLength}
}
