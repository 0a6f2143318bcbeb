package service

// ImageOwner определяет тип владельца изображения.
// Значение попадает в префикс имени файла и выбирает каталог хранения.
type ImageOwner string

const (
	ImageOwnerCategory ImageOwner = "Category"
	ImageOwnerProduct  ImageOwner = "Product"
)

// ImageStore интерфейс хранилища изображений
// Используется для dependency injection и упрощения тестирования
type ImageStore interface {
	// Store перекодирует изображение в webp, сохраняет на диск
	// и возвращает публичный URL
	Store(data []byte, owner ImageOwner, ownerSlug string) (string, error)
	// Fetch возвращает изображение в запрошенном масштабе.
	// Неизвестный вариант дает (nil, nil) - "нет содержимого".
	Fetch(name string, variant string) ([]byte, error)
	// Remove удаляет файл изображения по его публичному URL
	Remove(imageURL string) error
}
