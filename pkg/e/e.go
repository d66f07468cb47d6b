package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки окружения
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownAssetProvider = fmt.Errorf("unknown asset provider")

	// Внутренние ошибки с векторами
	ErrEmbeddingsUnavailable = fmt.Errorf("embeddings are unavailable")
	ErrVectorEmbeddingEmpty  = fmt.Errorf("vector embedding is empty")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrInvalidJSON          = fmt.Errorf("invalid json body")
	ErrTitleRequired        = fmt.Errorf("product title is required")
	ErrPriceRequired        = fmt.Errorf("product price is required")
	ErrInvalidPrice         = fmt.Errorf("price must be a non-negative number")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrSizeRequired         = fmt.Errorf("size is required")
	ErrInvalidCartIndex     = fmt.Errorf("cart index must be an integer")
	ErrInvalidCartKey       = fmt.Errorf("invalid cart line key")
	ErrInvalidQuantityDelta = fmt.Errorf("quantity delta must be a non-zero integer")
	ErrDetailsRequired      = fmt.Errorf("fit details are required")
	ErrInvalidProductID     = fmt.Errorf("invalid product id")

	// 401 Unauthorized
	ErrUnauthorized    = fmt.Errorf("unauthorized")
	ErrInvalidPassword = fmt.Errorf("incorrect password")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
