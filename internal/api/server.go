package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/limbo/dayslide/internal/service"
)

const (
	defaultOpTimeout = 15 * time.Second
	shutdownTimeout  = 5 * time.Second
)

type Server struct {
	mx          *chi.Mux
	registry    SessionRegistryI
	authService service.AuthServiceI
	jwtService  JWTServiceI
	opTimeout   time.Duration
}

type ServicesList struct {
	Registry    SessionRegistryI
	AuthService service.AuthServiceI
	JwtService  JWTServiceI
	// Upper bound for one operation, generation latency included
	OpTimeout time.Duration
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:          chi.NewMux(),
		registry:    servicesOptions.Registry,
		authService: servicesOptions.AuthService,
		jwtService:  servicesOptions.JwtService,
		opTimeout:   servicesOptions.OpTimeout,
	}
	if s.opTimeout <= 0 {
		s.opTimeout = defaultOpTimeout
	}
	s.MountHandlers()
	return s
}

func (s *Server) MountHandlers() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Get("/healthz", s.Health)

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/devices", s.RegisterDevice)

		r.Group(func(r chi.Router) {
			r.Use(s.DeviceMiddleware, s.LoggerExtensionMiddleware)

			r.Get("/state", s.GetState)
			r.Post("/journey", s.StartJourney)
			r.Post("/landing", s.BackToLanding)
			r.Post("/logout", s.Logout)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/signup", s.SignUp)
				r.Post("/login", s.Login)
				r.Post("/google", s.GoogleAuth)
			})

			r.Route("/account", func(r chi.Router) {
				r.Patch("/", s.UpdateProfile)
				r.Delete("/", s.DeleteAccount)
			})

			r.Route("/onboarding", func(r chi.Router) {
				r.Get("/", s.GetOnboarding)
				r.Put("/vision", s.SetVision)
				r.Put("/context", s.SetContext)
				r.Post("/next", s.NextStep)
				r.Post("/prev", s.PrevStep)
				r.Post("/generate", s.GeneratePlan)
				r.Post("/refine", s.RefinePlan)
				r.Post("/complete", s.CompleteOnboarding)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", s.GetDashboard)
				r.Post("/refresh", s.RefreshDashboard)
				r.Post("/action", s.LoadDailyAction)
				r.Post("/action/complete", s.CompleteAction)
				r.Get("/motivation", s.GetMotivation)
				r.Get("/timer", s.GetTimer)
				r.Post("/timer", s.StartTimer)
				r.Delete("/timer", s.StopTimer)
			})
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.New("listening error: " + err.Error())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
