package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Auth.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index when it is empty but
// the catalog already has ingredients. Should be called after all
// services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	ingredientService := do.MustInvoke[*service.IngredientService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	ingredients, err := storeHandle.ListIngredients(ctx)
	if err != nil || len(ingredients) == 0 {
		return
	}

	log.Info("Search index is empty but ingredients exist, triggering reindex",
		"ingredient_count", len(ingredients),
	)

	go func() {
		reindexCtx := context.Background()
		if err := ingredientService.ReindexAll(reindexCtx); err != nil {
			log.Error("Search reindex failed", "error", err)
		} else {
			count, _ := indexHandle.DocumentCount()
			log.Info("Search reindex completed", "documents", count)
		}
	}()
}
