package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateCycleSettingsRejectsOutOfRangeAndIncompatibleValues(t *testing.T) {
	config := DefaultPredictionConfig()

	cases := []struct {
		name     string
		settings models.CycleSettings
		want     error
	}{
		{name: "cycle too short", settings: models.CycleSettings{AvgCycleLength: 14, AvgPeriodLength: 5}, want: ErrSettingsCycleLengthOutOfRange},
		{name: "cycle too long", settings: models.CycleSettings{AvgCycleLength: 91, AvgPeriodLength: 5}, want: ErrSettingsCycleLengthOutOfRange},
		{name: "period too long", settings: models.CycleSettings{AvgCycleLength: 28, AvgPeriodLength: 15}, want: ErrSettingsPeriodLengthOutOfRange},
		{name: "period zero", settings: models.CycleSettings{AvgCycleLength: 28, AvgPeriodLength: 0}, want: ErrSettingsPeriodLengthOutOfRange},
		{name: "ovulation inside period", settings: models.CycleSettings{AvgCycleLength: 20, AvgPeriodLength: 6}, want: ErrSettingsPeriodLengthIncompatible},
		{name: "valid", settings: models.CycleSettings{AvgCycleLength: 28, AvgPeriodLength: 13}, want: nil},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			err := config.ValidateCycleSettings(testCase.settings)
			if testCase.want == nil && err != nil {
				t.Fatalf("expected valid settings, got %v", err)
			}
			if testCase.want != nil && !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
}

func TestSaveCycleSettingsRebuildsCycles(t *testing.T) {
	store := newMemoryStore()
	user := store.addUser("settings@example.com", defaultSettings())
	store.logs[user.ID] = map[string]models.DailyLog{
		"2024-04-01": {UserID: user.ID, Day: dates.MustParse("2024-04-01"), Flow: models.FlowHeavy},
	}
	days := NewDayService(store, store, store, DefaultPredictionConfig())
	service := NewSettingsService(store, store, days, DefaultPredictionConfig())

	saved, err := service.SaveCycleSettings(context.Background(), user.ID, models.CycleSettings{AvgCycleLength: 32, AvgPeriodLength: 6})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if saved.AvgCycleLength != 32 {
		t.Fatalf("unexpected saved settings: %#v", saved)
	}
	if cycles := store.cycles[user.ID]; len(cycles) != 1 || cycles[0].Length != 32 {
		t.Fatalf("expected open cycle length to follow settings, got %#v", cycles)
	}

	loaded, err := service.LoadSettings(context.Background(), user.ID)
	if err != nil || loaded.AvgPeriodLength != 6 {
		t.Fatalf("unexpected loaded settings %#v err=%v", loaded, err)
	}
}

func TestSaveCycleSettingsUnknownUser(t *testing.T) {
	store := newMemoryStore()
	days := NewDayService(store, store, store, DefaultPredictionConfig())
	service := NewSettingsService(store, store, days, DefaultPredictionConfig())

	if _, err := service.SaveCycleSettings(context.Background(), 42, defaultSettings()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := service.LoadSettings(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteAccountRequiresPassword(t *testing.T) {
	store := newMemoryStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{Email: "delete@example.com", PasswordHash: string(hash)}
	if err := store.Create(context.Background(), &user); err != nil {
		t.Fatalf("create: %v", err)
	}
	service := NewSettingsService(store, store, nil, DefaultPredictionConfig())

	if err := service.DeleteAccount(context.Background(), user.ID, " "); !errors.Is(err, ErrSettingsPasswordMissing) {
		t.Fatalf("expected ErrSettingsPasswordMissing, got %v", err)
	}
	if err := service.DeleteAccount(context.Background(), user.ID, "WrongPass1"); !errors.Is(err, ErrSettingsPasswordInvalid) {
		t.Fatalf("expected ErrSettingsPasswordInvalid, got %v", err)
	}
	if err := service.DeleteAccount(context.Background(), user.ID, "StrongPass1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if _, ok := store.users[user.ID]; ok {
		t.Fatal("expected user removed")
	}
}
