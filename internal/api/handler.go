package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclekeeper/internal/db"
	"github.com/terraincognita07/cyclekeeper/internal/metrics"
	"github.com/terraincognita07/cyclekeeper/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	SecretKey         string
	Location          *time.Location
	DefaultCycleLimit int
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
	Now               func() time.Time
}

type Handler struct {
	database          *gorm.DB
	cycles            *services.CycleService
	tracking          *services.TrackingService
	secretKey         []byte
	location          *time.Location
	defaultCycleLimit int
	log               *zap.Logger
	metrics           *metrics.Metrics
	now               func() time.Time
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	secret := strings.TrimSpace(options.SecretKey)
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	limit := options.DefaultCycleLimit
	if limit <= 0 {
		limit = services.DefaultCycleLimit
	}
	log := options.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		database:          database,
		cycles:            services.NewCycleService(repositories.Cycles, repositories.Profiles),
		tracking:          services.NewTrackingService(repositories.DailyLogs, repositories.Symptoms),
		secretKey:         []byte(secret),
		location:          location,
		defaultCycleLimit: limit,
		log:               log,
		metrics:           options.Metrics,
		now:               now,
	}, nil
}

func (handler *Handler) today() time.Time {
	return services.TodayAt(handler.now(), handler.location)
}
