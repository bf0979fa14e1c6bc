package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/catalog"
	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/logger"
)

// ProvideCatalogLoader provides the fixture loader.
func ProvideCatalogLoader(i do.Injector) (*catalog.Loader, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return catalog.NewLoader(storeHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}

// CatalogWatcherHandle wraps the fixture watcher with shutdown capability.
// The watcher is nil when import watching is disabled.
type CatalogWatcherHandle struct {
	*catalog.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Stop()
}

// ProvideCatalogWatcher provides the import directory watcher.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Catalog.Watch {
		log.Info("Fixture import watching disabled by configuration")
		return &CatalogWatcherHandle{}, nil
	}

	loader := do.MustInvoke[*catalog.Loader](i)

	w, err := catalog.NewWatcher(loader, cfg.Catalog.ImportDir, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			log.Error("Fixture watcher error", "error", err)
		}
	}()

	log.Info("Fixture import watcher started", "dir", cfg.Catalog.ImportDir)

	return &CatalogWatcherHandle{Watcher: w, cancel: cancel}, nil
}
