package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/neurohabit/backend/internal/service"
)

type Server struct {
	mx                *chi.Mux
	userService       service.UserServiceI
	habitService      service.HabitsServiceI
	completionService service.CompletionsServiceI
	dashboardService  service.DashboardServiceI
	predictionService service.PredictionServiceI
	jwtService        JWTServiceI
	googleProvider    GoogleProviderI
}

type ServicesList struct {
	UserService       service.UserServiceI
	HabitsService     service.HabitsServiceI
	CompletionService service.CompletionsServiceI
	DashboardService  service.DashboardServiceI
	PredictionService service.PredictionServiceI
	JwtService        JWTServiceI
	GoogleProvider    GoogleProviderI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                chi.NewMux(),
		userService:       servicesOptions.UserService,
		habitService:      servicesOptions.HabitsService,
		completionService: servicesOptions.CompletionService,
		dashboardService:  servicesOptions.DashboardService,
		predictionService: servicesOptions.PredictionService,
		jwtService:        servicesOptions.JwtService,
		googleProvider:    servicesOptions.GoogleProvider,
	}
}

func (s *Server) setupRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Get("/", s.HealthCheck)
	s.mx.Post("/auth/register", s.Register)
	s.mx.Post("/auth/login", s.Login)
	s.mx.Get("/auth/google", s.GoogleAuth)
	s.mx.Get("/auth/google/callback", s.GoogleCallback)

	s.mx.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Use(s.LoggerExtensionMiddleware)

		r.Get("/users/me", s.GetMe)
		r.Put("/users/me", s.UpdateMe)
		r.Delete("/users/me", s.DeleteMe)

		r.Post("/habits", s.CreateHabit)
		r.Get("/habits", s.GetHabits)
		r.Get("/habits/{id}", s.GetHabit)
		r.Put("/habits/{id}", s.UpdateHabit)
		r.Delete("/habits/{id}", s.DeleteHabit)

		r.Post("/habits/{id}/events", s.LogCompletion)
		r.Get("/habits/{id}/events", s.GetHabitEvents)

		r.Get("/dashboard", s.GetDashboard)

		r.Post("/predict", s.Predict)
		r.Get("/predictions", s.GetPredictions)
	})
}

func (s *Server) Run(address string) error {
	s.setupRoutes()
	return http.ListenAndServe(address, s.mx)
}
