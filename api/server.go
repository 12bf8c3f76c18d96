/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/shift-types   Shift templates
  /api/shifts/*      Shift lifecycle
  /api/workplaces/*  Workplaces (rates, premium windows, scoped templates)
  /api/summary       Dashboard aggregates
  /api/history       Shift history
  /api/settings/*    Rate settings and premium
  /api/me            Profile
  /api/salary/net    Net salary calculator
  /*                 Static files (frontend build)

SECURITY NOTE:
  Identity arrives pre-validated in the X-User-ID header; the reverse
  proxy in front terminates OAuth. The server itself does no token work.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-User-Name", "X-User-Email"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/shift-types", h.ListShiftTypes)

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", h.CreateShift)
			r.Put("/{id}", h.UpdateShift)
			r.Delete("/{id}", h.DeleteShift)
			r.Post("/{id}/end", h.EndShift)
			r.Post("/{id}/tip", h.SetTip)
		})

		r.Route("/workplaces", func(r chi.Router) {
			r.Get("/", h.ListWorkplaces)
			r.Post("/", h.SaveWorkplace)
			r.Get("/{id}", h.GetWorkplace)
		})

		r.Get("/summary", h.Summary)
		r.Get("/history", h.History)

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Post("/", h.UpdateSettings)
			r.Post("/premium", h.ExtendPremium)
		})

		r.Get("/me", h.Me)
		r.Post("/salary/net", h.NetSalary)
	})

	// Serve the frontend build when present; otherwise a plain index so the
	// API is still discoverable from a browser.
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Hour Tracker</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Hour Tracker API</h1>
<p>The frontend is not built. API endpoints:</p>
<ul>
<li><a href="/api/shift-types">/api/shift-types</a> - Shift templates</li>
<li><a href="/api/summary">/api/summary</a> - Dashboard summary</li>
<li><a href="/api/history">/api/history</a> - Shift history</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
