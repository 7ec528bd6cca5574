package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/shelfmarkapp/shelfmark-client/internal/broadcast"
	"github.com/shelfmarkapp/shelfmark-client/internal/catalog"
	"github.com/shelfmarkapp/shelfmark-client/internal/config"
	"github.com/shelfmarkapp/shelfmark-client/internal/search"
	"github.com/shelfmarkapp/shelfmark-client/internal/session"
	"github.com/shelfmarkapp/shelfmark-client/internal/validation"
)

// ProvideSessionStore provides the identity holder.
func ProvideSessionStore(i do.Injector) (*session.Store, error) {
	log := do.MustInvoke[*slog.Logger](i)
	return session.NewStore(log), nil
}

// ProvideHub provides the in-process update hub.
func ProvideHub(i do.Injector) (*broadcast.Hub, error) {
	log := do.MustInvoke[*slog.Logger](i)
	return broadcast.NewHub(log), nil
}

// ProvideCatalogClient provides the remote catalog API client. The session
// store doubles as its token source.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)
	sessions := do.MustInvoke[*session.Store](i)

	return catalog.New(catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Tokens:  sessions,
		Timeout: cfg.Catalog.Timeout,
		RPS:     cfg.Catalog.RPS,
		Burst:   cfg.Catalog.Burst,
		Logger:  log,
	}), nil
}

// SuggesterHandle wraps the suggestion index with shutdown capability.
type SuggesterHandle struct {
	*search.Suggester
}

// Shutdown implements do.Shutdownable.
func (h *SuggesterHandle) Shutdown() error {
	return h.Close()
}

// ProvideSuggester provides the in-memory type-ahead suggestion index.
func ProvideSuggester(i do.Injector) (*SuggesterHandle, error) {
	suggester, err := search.NewSuggester()
	if err != nil {
		return nil, err
	}
	return &SuggesterHandle{Suggester: suggester}, nil
}

// ProvideValidator provides the request payload validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
