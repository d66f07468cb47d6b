package usecase

// PRODUCT FORM

// ProductForm — сырые поля формы товара из админки.
type ProductForm struct {
	Title       string
	Price       string
	Description string
	Fit         string
	Fabric      string
	Care        string
	Sizes       string   // размеры через запятую
	Images      []string // уже загруженные ассеты, по порядку
}

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type, определённый по содержимому
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов и ключа объекта)
}

// CATALOG

type FitAdviceReq struct {
	Handle  string
	Details string
}

// CART

type AddCartItemReq struct {
	SessionID string
	Handle    string
	Size      string
}

// INFRASTRUCTURE

// AssetURLOptions — параметры трансформации при доставке ассета.
type AssetURLOptions struct {
	Width  int
	Height int
	Crop   string // по умолчанию fill
}

// UploadImagesReq — запрос на загрузку изображений.
type UploadImagesReq struct {
	Folder string
	Images []ProductImage
}

// UploadImagesRes — идентификаторы загруженных ассетов в порядке запроса.
type UploadImagesRes struct {
	AssetIDs []string
}

type EmbedRes struct {
	Vector       []float32
	ModelVersion string
}

type WriteRawMessageReq struct {
	Key     string
	Payload []byte
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadImagesReq(folder string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		Folder: folder,
		Images: images,
	}
}

func NewUploadImagesRes(assetIDs []string) *UploadImagesRes {
	return &UploadImagesRes{AssetIDs: assetIDs}
}

func NewEmbedRes(vector []float32, modelVersion string) *EmbedRes {
	return &EmbedRes{
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(key string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:     key,
		Payload: payload,
	}
}

func NewFitAdviceReq(handle string, details string) *FitAdviceReq {
	return &FitAdviceReq{
		Handle:  handle,
		Details: details,
	}
}

func NewAddCartItemReq(sessionID string, handle string, size string) *AddCartItemReq {
	return &AddCartItemReq{
		SessionID: sessionID,
		Handle:    handle,
		Size:      size,
	}
}
