package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/flowcast/internal/db"
	"github.com/terraincognita07/flowcast/internal/logger"
	"github.com/terraincognita07/flowcast/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName       = "flowcast_auth"
	contextUserKey       = "current_user"
	contextRequestIDKey  = "request_id"
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
	minSecretKeyLength   = 32
)

type HandlerConfig struct {
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	Prediction   services.PredictionConfig
	Logger       *logger.Logger
	Notifier     *db.ChangeNotifier
}

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	log          *logger.Logger
	loginLimiter *attemptLimiter

	store             *db.Store
	authService       *services.AuthService
	dayService        *services.DayService
	predictionService *services.PredictionService
	statsService      *services.StatsService
	settingsService   *services.SettingsService
	exportService     *services.ExportService
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if len(config.SecretKey) < minSecretKeyLength {
		return nil, errors.New("secret key must be at least 32 characters")
	}
	if err := config.Prediction.Validate(); err != nil {
		return nil, err
	}
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Logger == nil {
		config.Logger = logger.NewNop()
	}

	store := db.NewStore(database, config.Notifier)
	repos := store.Repositories()
	dayService := services.NewDayService(repos.DailyLogs, repos.Users, store, config.Prediction)

	return &Handler{
		secretKey:    []byte(config.SecretKey),
		location:     config.Location,
		cookieSecure: config.CookieSecure,
		log:          config.Logger,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),

		store:             store,
		authService:       services.NewAuthService(repos.Users),
		dayService:        dayService,
		predictionService: services.NewPredictionService(store, config.Prediction),
		statsService:      services.NewStatsService(store, config.Prediction),
		settingsService:   services.NewSettingsService(repos.Users, store, dayService, config.Prediction),
		exportService:     services.NewExportService(store),
	}, nil
}
