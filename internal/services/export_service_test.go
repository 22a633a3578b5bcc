package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/flowcast/internal/dates"
	"github.com/terraincognita07/flowcast/internal/models"
)

func newTestExportService(t *testing.T) (*ExportService, models.User) {
	t.Helper()

	store := newMemoryStore()
	user := store.addUser("export@example.com", defaultSettings())
	snapshot := threeCycleSnapshot()
	for _, entry := range snapshot.Logs {
		entry.UserID = user.ID
		require.NoError(t, store.Upsert(context.Background(), &entry))
	}
	require.NoError(t, store.SaveCycles(context.Background(), user.ID, snapshot.Cycles))

	service := NewExportService(store)
	service.now = func() time.Time { return time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC) }
	return service, user
}

func TestBuildDocumentFiltersByRange(t *testing.T) {
	service, user := newTestExportService(t)
	from := dates.MustParse("2024-01-29")
	to := dates.MustParse("2024-02-02")

	document, err := service.BuildDocument(context.Background(), user.ID, &from, &to)
	require.NoError(t, err)
	assert.Len(t, document.Entries, 5)
	assert.Equal(t, ExportSummary{TotalEntries: 5, HasData: true, DateFrom: from, DateTo: to}, document.Summary)
	require.Len(t, document.Cycles, 1)
	assert.Equal(t, "2024-01-29", document.Cycles[0].StartDate.String())
	assert.NotNil(t, document.Entries[0].Symptoms)
	assert.Equal(t, 2024, document.ExportedAt.Year())
}

func TestBuildDocumentWithoutRange(t *testing.T) {
	service, user := newTestExportService(t)

	document, err := service.BuildDocument(context.Background(), user.ID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, document.Entries, 16)
	assert.Len(t, document.Cycles, 3)
	assert.Equal(t, "2024-03-05", document.Summary.DateTo.String())
}

func TestBuildDocumentRejectsInvertedRange(t *testing.T) {
	service, user := newTestExportService(t)
	from := dates.MustParse("2024-02-02")
	to := dates.MustParse("2024-01-29")

	_, err := service.BuildDocument(context.Background(), user.ID, &from, &to)
	assert.True(t, errors.Is(err, ErrInvalidDayRange))
}

func TestExportCSVColumns(t *testing.T) {
	water := 1200
	temperature := 36.6
	row := ExportCSVColumns(models.DailyLog{
		Day:          dates.MustParse("2024-03-01"),
		Flow:         models.FlowSpotting,
		Symptoms:     []string{"cramps", "acne"},
		WaterMl:      &water,
		TemperatureC: &temperature,
		Note:         "note",
	})

	require.Len(t, row, len(ExportCSVHeaders))
	assert.Equal(t, []string{"2024-03-01", "Spotting", "No", "", "cramps; acne", "", "", "1200", "", "", "36.6", "note"}, row)
}
