// @title NeuroHabit API
// @description API for the habit-tracker app "NeuroHabit"
// @schemes http
package main

import (
	"log"
	"log/slog"

	"github.com/neurohabit/backend/internal/api"
	"github.com/neurohabit/backend/internal/oauth"
	"github.com/neurohabit/backend/internal/predictor"
	"github.com/neurohabit/backend/internal/repository"
	"github.com/neurohabit/backend/internal/service"
	"github.com/neurohabit/backend/pkg/cleanup"
	"github.com/neurohabit/backend/pkg/config"
	jwtservice "github.com/neurohabit/backend/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	habitsRepo := repository.NewHabitsRepo(&dbCfg)
	eventsRepo := repository.NewEventsRepo(&dbCfg)
	statsRepo := repository.NewStatsRepo(&dbCfg)
	predictionsRepo := repository.NewPredictionsRepo(&dbCfg)

	// The service stays up without the model artifact; prediction routes
	// answer 503 until it appears on disk and the process restarts.
	var adapter service.PredictorI
	modelPath := cfg.GetStringDefault("MODEL_PATH", "models/habit_predictor.txt")
	loaded, err := predictor.New(modelPath)
	if err != nil {
		slog.Warn("prediction model not loaded", slog.String("path", modelPath), slog.String("error", err.Error()))
	} else {
		adapter = loaded
	}

	serv := api.New(&api.ServicesList{
		UserService:       service.NewUserService(usersRepo),
		HabitsService:     service.NewHabitsService(habitsRepo),
		CompletionService: service.NewCompletionsService(habitsRepo, eventsRepo),
		DashboardService:  service.NewDashboardService(usersRepo, habitsRepo, eventsRepo, statsRepo),
		PredictionService: service.NewPredictionService(habitsRepo, eventsRepo, usersRepo, predictionsRepo, adapter),
		JwtService:        jwtservice.New(cfg.GetString("JWT_SECRET")),
		GoogleProvider: oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: cfg.GetString("GOOGLE_CLIENT_SECRET"),
			RedirectURI:  cfg.GetString("GOOGLE_REDIRECT_URI"),
		}),
	})
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
