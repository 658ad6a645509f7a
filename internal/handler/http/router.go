package http

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aarambh-hq/attendance-backend-go/internal/config"
	"github.com/aarambh-hq/attendance-backend-go/internal/handler/http/middleware"
	"github.com/aarambh-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Locally stored uploads (selfies, avatars).
	if cfg.Storage.Type == "local" {
		fileServer(r, "/uploads", http.Dir(cfg.Storage.BasePath))
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
				r.Get("/callback/google", authHandler.OAuthCallbackGoogle)
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Get("/session", authHandler.Session)
			})
		})

		// The live stream authenticates with its own short-lived token.
		r.Get("/dashboard/stream", dashboardHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/history", attendanceHandler.History)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagementOnly)
					r.Get("/", attendanceHandler.List)
					r.Get("/employee/{id}", attendanceHandler.HistoryFor)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.GetMyProfile)
				r.Put("/me", employeeHandler.UpdateMyProfile)
				r.Post("/me/avatar", employeeHandler.UploadMyAvatar)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagementOnly)
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Get("/{id}", employeeHandler.Get)
					r.Delete("/{id}", employeeHandler.Delete)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/statistics/{id}", reportHandler.Statistics)
				r.Get("/calendar/{id}", reportHandler.Calendar)
				r.Get("/export/{id}", reportHandler.ExportCSV)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagementOnly)
					r.Get("/daily", reportHandler.DailyRoster)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stream-token", dashboardHandler.StreamToken)

				// Management only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ManagementOnly)
					r.Get("/overview", dashboardHandler.Overview)
					r.Get("/activities", dashboardHandler.Activities)
				})
			})
		})
	})
	return r
}

// fileServer serves static files from root under path.
func fileServer(r chi.Router, path string, root http.FileSystem) {
	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
