package domain

// Image описывает изображение, которое загружается в объектное хранилище.
type Image struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	// Передайте -1 в Size, если размер потока неизвестен
	// (внимание: при -1 клиент выделит большой буфер).
	Size     *int64
	MimeType *string // например "image/jpeg"
}

func NewImage(id string, bucket string, objectKey string, data []byte, size *int64, mimeType *string) *Image {
	return &Image{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     data,
		Size:      size,
		MimeType:  mimeType,
	}
}
