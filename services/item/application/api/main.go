package api

import (
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/itemvalidation/pkg/app"
	"github.com/ghuser/itemvalidation/pkg/session"
	"github.com/ghuser/itemvalidation/pkg/telemetry"
	"github.com/ghuser/itemvalidation/services/item/application/handlers"
	appsvcs "github.com/ghuser/itemvalidation/services/item/application/services"
)

// ItemRoutes registers the item form endpoints of every controller generation
// under /validation/{v2,v3,v4}/items.
func ItemRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	metrics, err := telemetry.NewFormMetrics(otel.GetMeterProvider())
	if err != nil {
		a.Logger.Warn("form metrics disabled", "error", err)
	}
	deps := handlers.Deps{
		Items:    svcs.Item,
		Messages: a.Messages,
		Flashes:  session.NewFlashes(a.SessionStore),
		Logger:   a.Logger,
		Metrics:  metrics,
	}

	r.Route("/validation", func(r chi.Router) {
		r.Route("/v2/items", handlers.NewV2Handler(deps, a.Config.V2AddVariant).Routes)
		r.Route("/v3/items", handlers.NewV3Handler(deps).Routes)
		r.Route("/v4/items", handlers.NewV4Handler(deps).Routes)
	})
}
