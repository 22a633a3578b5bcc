package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/flowcast/internal/config"
	"github.com/terraincognita07/flowcast/internal/db"
	"github.com/terraincognita07/flowcast/internal/logger"
	"github.com/terraincognita07/flowcast/internal/services"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    command
		wantErr bool
	}{
		{name: "default serves", args: nil, want: command{name: "serve"}},
		{name: "explicit serve", args: []string{"serve"}, want: command{name: "serve"}},
		{name: "reset password", args: []string{"reset-password", " a@example.com "}, want: command{name: "reset-password", email: "a@example.com"}},
		{name: "reset password needs email", args: []string{"reset-password"}, wantErr: true},
		{name: "rebuild everyone", args: []string{"rebuild-cycles"}, want: command{name: "rebuild-cycles"}},
		{name: "rebuild one user", args: []string{"rebuild-cycles", "b@example.com"}, want: command{name: "rebuild-cycles", email: "b@example.com"}},
		{name: "rebuild extra args", args: []string{"rebuild-cycles", "a", "b"}, wantErr: true},
		{name: "unknown", args: []string{"migrate"}, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseCommand(test.args)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestNewAppServesHealth(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "main.db"), nil)
	require.NoError(t, err)

	app, err := newApp(config.Config{
		SecretKey:  "0123456789abcdef0123456789abcdef",
		Location:   time.UTC,
		Prediction: services.DefaultPredictionConfig(),
	}, database, nil, logger.NewNop())
	require.NoError(t, err)

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)

	_, err = newApp(config.Config{SecretKey: "short"}, database, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestLogChangesStopsWithContext(t *testing.T) {
	notifier := db.NewChangeNotifier(1)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		logChanges(ctx, notifier, logger.NewNop())
		close(done)
	}()

	require.Eventually(t, func() bool { return notifier.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	notifier.Publish(db.Change{UserID: 1, Kind: db.ChangeLogs})

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("logChanges did not stop after cancel")
	}
	assert.Equal(t, 0, notifier.Subscribers())
}
