package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/config"
	"github.com/shelfmarkapp/shelfmark-client/internal/projection"
	"github.com/shelfmarkapp/shelfmark-client/internal/search"
	"github.com/shelfmarkapp/shelfmark-client/internal/session"
	"github.com/shelfmarkapp/shelfmark-client/internal/status"
	"github.com/shelfmarkapp/shelfmark-client/internal/toggle"
)

// ProvideToggleEngine provides the optimistic toggle engine.
func ProvideToggleEngine(i do.Injector) (*toggle.Engine, error) {
	client := do.MustInvoke[*catalog.Client](i)
	sessions := do.MustInvoke[*session.Store](i)
	hub := do.MustInvoke[*broadcast.Hub](i)
	log := do.MustInvoke[*slog.Logger](i)

	return toggle.NewEngine(client, sessions, hub, log), nil
}

// ProvideStatusMachine provides the reading-status transition machine.
func ProvideStatusMachine(i do.Injector) (*status.Machine, error) {
	client := do.MustInvoke[*catalog.Client](i)
	sessions := do.MustInvoke[*session.Store](i)
	hub := do.MustInvoke[*broadcast.Hub](i)
	log := do.MustInvoke[*slog.Logger](i)

	return status.NewMachine(client, sessions, hub, log), nil
}

// PipelineHandle wraps the search pipeline with shutdown capability.
type PipelineHandle struct {
	*search.Pipeline
}

// Shutdown implements do.Shutdownable.
func (h *PipelineHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideSearchPipeline provides the debounced query pipeline.
func ProvideSearchPipeline(i do.Injector) (*PipelineHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	client := do.MustInvoke[*catalog.Client](i)
	suggester := do.MustInvoke[*SuggesterHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	pipeline := search.NewPipeline(search.Options{
		Catalog:    client,
		Suggester:  suggester.Suggester,
		Quiescence: cfg.Search.Quiescence,
		Logger:     log,
	})
	return &PipelineHandle{Pipeline: pipeline}, nil
}

// ProvideProjectionManager provides the view projection manager.
func ProvideProjectionManager(i do.Injector) (*projection.Manager, error) {
	client := do.MustInvoke[*catalog.Client](i)
	hub := do.MustInvoke[*broadcast.Hub](i)
	sessions := do.MustInvoke[*session.Store](i)
	suggester := do.MustInvoke[*SuggesterHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return projection.NewManager(client, hub, sessions, suggester.Suggester, log), nil
}
