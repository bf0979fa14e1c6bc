package providers

import (
	"github.com/samber/do/v2"

	"github.com/tvules/Foodgram/internal/config"
	"github.com/tvules/Foodgram/internal/logger"
	"github.com/tvules/Foodgram/internal/media/images"
)

// ImageStorageHandle wraps the image blob storage with shutdown capability.
type ImageStorageHandle struct {
	*images.Storage
}

// Shutdown implements do.Shutdownable.
func (h *ImageStorageHandle) Shutdown() error {
	return h.Close()
}

// ProvideImageStorage provides the image blob storage.
func ProvideImageStorage(i do.Injector) (*ImageStorageHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.Media.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Image storage initialized", "path", cfg.Media.Path)

	return &ImageStorageHandle{Storage: storage}, nil
}

// ProvideImageProcessor provides the recipe image processor.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	storageHandle := do.MustInvoke[*ImageStorageHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return images.NewProcessor(storageHandle.Storage, log.Logger), nil
}
