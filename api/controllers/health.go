package controllers

import (
	"context"
	"net/http"

	"github.com/tolkflow/tolkflow-backend/api/responses"
	"github.com/tolkflow/tolkflow-backend/pkg/config"
	pkgerrors "github.com/tolkflow/tolkflow-backend/pkg/errors"
	"github.com/tolkflow/tolkflow-backend/pkg/logger"
)

// HealthPinger is anything readiness needs to reach before serving traffic.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tolkflow-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tolkflow-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
