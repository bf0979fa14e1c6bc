package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"log/slog"
	"strings"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// jpegQuality is the re-encode quality for stored recipe images.
const jpegQuality = 85

// maxEncodedImageBytes bounds the base64 payload a client may submit.
const maxEncodedImageBytes = 10 << 20 // 10 MiB

// Processor decodes client-submitted images and stores them as JPEG.
type Processor struct {
	storage *Storage
	logger  *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(storage *Storage, logger *slog.Logger) *Processor {
	return &Processor{
		storage: storage,
		logger:  logger,
	}
}

// ProcessDataURI decodes a base64 data URI (or bare base64 string),
// re-encodes the image as JPEG, stores it under the given path, and
// returns the image's BlurHash placeholder.
func (p *Processor) ProcessDataURI(dataURI, path string) (string, error) {
	raw, err := DecodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	if err := p.storage.Save(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	hash, err := ComputeBlurHash(img)
	if err != nil {
		p.logger.Warn("failed to compute blurhash",
			"path", path,
			"error", err,
		)
		hash = ""
	}

	p.logger.Debug("processed image",
		"path", path,
		"format", format,
		"size", buf.Len(),
	)

	return hash, nil
}

// DecodeDataURI strips an optional "data:<mime>;base64," prefix and
// decodes the remaining base64 payload.
func DecodeDataURI(dataURI string) ([]byte, error) {
	payload := dataURI
	if strings.HasPrefix(dataURI, "data:") {
		idx := strings.Index(dataURI, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		meta := dataURI[:idx]
		if !strings.HasSuffix(meta, ";base64") {
			return nil, fmt.Errorf("data URI must be base64 encoded")
		}
		payload = dataURI[idx+1:]
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("image payload cannot be empty")
	}
	if len(payload) > maxEncodedImageBytes {
		return nil, fmt.Errorf("image payload too large")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return raw, nil
}
