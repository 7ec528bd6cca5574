// Package di provides dependency injection configuration for the Shelfmark
// client runtime.
package di

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/config"
	"github.com/shelfmarkapp/shelfmark-client/internal/di/providers"
	"github.com/shelfmarkapp/shelfmark-client/internal/projection"
	"github.com/shelfmarkapp/shelfmark-client/internal/session"
	"github.com/shelfmarkapp/shelfmark-client/internal/status"
	"github.com/shelfmarkapp/shelfmark-client/internal/toggle"
	"github.com/shelfmarkapp/shelfmark-client/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSessionStore)
	do.Provide(injector, providers.ProvideHub)
	do.Provide(injector, providers.ProvideCatalogClient)
	do.Provide(injector, providers.ProvideSuggester)
	do.Provide(injector, providers.ProvideValidator)

	// Interaction services
	do.Provide(injector, providers.ProvideToggleEngine)
	do.Provide(injector, providers.ProvideStatusMachine)
	do.Provide(injector, providers.ProvideSearchPipeline)
	do.Provide(injector, providers.ProvideProjectionManager)

	return injector
}

// Bootstrap initializes all services and returns them ready for use.
// This triggers lazy initialization of the whole graph.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*slog.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*session.Store](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*broadcast.Hub](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*catalog.Client](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SuggesterHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*validation.Validator](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*toggle.Engine](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*status.Machine](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.PipelineHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*projection.Manager](injector); err != nil {
		return err
	}
	return nil
}
