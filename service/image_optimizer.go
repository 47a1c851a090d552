package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"capsule-os/cache"
	"capsule-os/logging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800

	// maxImageBytes bounds a single product image download
	maxImageBytes = 10 << 20

	thumbnailCacheMethod = "lookbook_thumbnail"
	thumbnailCacheTTL    = 24 * time.Hour
)

// ImageSize selects the output dimensions of OptimizeImage
type ImageSize string

const (
	ImageSizeThumb  ImageSize = "thumb"
	ImageSizeMedium ImageSize = "medium"
)

// OptimizeImage optimizes an image by converting to JPEG and resizing
// imageData: raw image bytes (PNG, JPEG, etc.)
// Returns optimized JPEG image bytes
func OptimizeImage(imageData []byte, size ImageSize) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	logging.Debug().Str("format", format).Str("bounds", img.Bounds().String()).Msg("📸 Image decoded")

	var maxDim, quality int
	switch size {
	case ImageSizeThumb:
		maxDim = maxSizeThumb
		quality = qualityThumb
	case ImageSizeMedium:
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		logging.Warn().Str("size", string(size)).Msg("⚠️  Unknown image size, defaulting to medium")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > maxDim || height > maxDim {
		// Keep aspect ratio
		var newWidth, newHeight int
		if width > height {
			newWidth = maxDim
			newHeight = int(float64(height) * float64(maxDim) / float64(width))
		} else {
			newHeight = maxDim
			newWidth = int(float64(width) * float64(maxDim) / float64(height))
		}

		logging.Debug().Msgf("🔄 Resizing image: %dx%d -> %dx%d", width, height, newWidth, newHeight)
		resizedImg = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageFetcher downloads product images and returns them as thumbnail data URIs
type ImageFetcher struct {
	client  *http.Client
	cache   cache.Cache
	baseURL string
}

// NewImageFetcher creates a fetcher with a per-request timeout; c may be nil.
// Relative image paths ("/images/tee.jpg") are resolved against baseURL.
func NewImageFetcher(baseURL string, timeout time.Duration, c cache.Cache) *ImageFetcher {
	if c == nil {
		c = cache.Noop{}
	}
	return &ImageFetcher{
		client:  &http.Client{Timeout: timeout},
		cache:   c,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// resolveImageURL prepends the base URL to root-relative paths
func (f *ImageFetcher) resolveImageURL(imageURL string) string {
	if strings.HasPrefix(imageURL, "/") && !strings.HasPrefix(imageURL, "//") && f.baseURL != "" {
		return f.baseURL + imageURL
	}
	return imageURL
}

// ThumbnailDataURI fetches imageURL, thumbnails it and encodes it as a JPEG data URI
func (f *ImageFetcher) ThumbnailDataURI(ctx context.Context, imageURL string) (string, error) {
	imageURL = f.resolveImageURL(imageURL)
	key := cache.GenerateKey(thumbnailCacheMethod, map[string]interface{}{"url": imageURL})
	if data, ok := f.cache.Get(ctx, key); ok {
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	thumb, err := OptimizeImage(raw, ImageSizeThumb)
	if err != nil {
		return "", err
	}

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(thumb)
	f.cache.Set(ctx, key, []byte(dataURI), thumbnailCacheTTL)
	return dataURI, nil
}
