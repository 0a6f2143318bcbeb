package service

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"pscosmeticos/internal/app/catalog/config"
	"pscosmeticos/pkg/logger"
	"pscosmeticos/pkg/metrics"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Варианты масштаба при отдаче изображения
const (
	VariantIcon       = "ICON"        // 10%
	VariantDisplay    = "DISPLAY"     // 100%
	VariantMidDisplay = "MID-DISPLAY" // 50%
)

var variantScales = map[string]float64{
	VariantIcon:       0.1,
	VariantDisplay:    1.0,
	VariantMidDisplay: 0.5,
}

const webpQuality = 90

// ImageService хранит изображения каталога на диске.
// Файлы раскладываются по каталогам владельцев (товар/категория),
// чтение идёт рекурсивным поиском от общего корня.
type ImageService struct {
	storage config.StorageConfig
	api     config.APIConfig
}

// NewImageService создает новое хранилище изображений
func NewImageService(storage config.StorageConfig, api config.APIConfig) *ImageService {
	return &ImageService{storage: storage, api: api}
}

// Store перекодирует загруженные байты в webp с полным масштабом
// и сохраняет файл {Owner}-{slug}-{uuid}.webp в каталоге владельца.
// Возвращает публичный URL для GET /api/{version}/image/{name}.
func (s *ImageService) Store(data []byte, owner ImageOwner, ownerSlug string) (string, error) {
	if len(data) == 0 {
		return "", NewEmptyImageError()
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	root := s.rootFor(owner)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s-%s.webp", owner, ownerSlug, uuid.New())

	file, err := os.Create(filepath.Join(root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := webp.Encode(file, img, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("failed to encode webp: %w", err)
	}

	metrics.ImagesStored.WithLabelValues(string(owner)).Inc()
	logger.Debug().
		Str("file", name).
		Str("owner", string(owner)).
		Msg("image stored")

	return fmt.Sprintf("%s/api/%s/image/%s", s.api.DomainIP, s.api.Version, name), nil
}

// Fetch ищет файл по имени под общим корнем и возвращает его
// в масштабе запрошенного варианта. Неизвестный вариант дает (nil, nil).
func (s *ImageService) Fetch(name string, variant string) ([]byte, error) {
	scale, ok := variantScales[strings.ToUpper(variant)]
	if !ok {
		return nil, nil
	}

	filePath, err := findFile(s.storage.ImageRoot, name)
	if err != nil {
		return nil, err
	}
	if filePath == "" {
		return nil, ErrImageNotFound
	}

	img, err := imaging.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	if scale != 1.0 {
		width := int(float64(img.Bounds().Dx()) * scale)
		height := int(float64(img.Bounds().Dy()) * scale)
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}

	return buf.Bytes(), nil
}

// Remove удаляет файл изображения по его публичному URL
func (s *ImageService) Remove(imageURL string) error {
	name := path.Base(imageURL)
	if name == "" || name == "." || name == "/" {
		return ErrImageNotFound
	}

	filePath, err := findFile(s.storage.ImageRoot, name)
	if err != nil {
		return err
	}
	if filePath == "" {
		return ErrImageNotFound
	}

	return os.Remove(filePath)
}

func (s *ImageService) rootFor(owner ImageOwner) string {
	switch owner {
	case ImageOwnerCategory:
		return s.storage.CategoryRoot
	case ImageOwnerProduct:
		return s.storage.ProductRoot
	default:
		return s.storage.ImageRoot
	}
}

// findFile рекурсивно ищет файл по имени.
// Индекса нет, стоимость O(количества файлов) на запрос.
func findFile(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name {
			found = p
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to scan image root: %w", err)
	}
	return found, nil
}
