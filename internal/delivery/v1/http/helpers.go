package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	maxImageCount   = 10
	maxFileSize     = 15 << 20
	maxJSONBodySize = 1 << 20
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

var badRequestErrors = []error{
	e.ErrStatusBadRequest,
	e.ErrExpectedMultipart,
	e.ErrInvalidJSON,
	e.ErrTitleRequired,
	e.ErrPriceRequired,
	e.ErrInvalidPrice,
	e.ErrNoImages,
	e.ErrTooManyImages,
	e.ErrFileTooLarge,
	e.ErrUnsupportedMediaType,
	e.ErrSizeRequired,
	e.ErrInvalidCartIndex,
	e.ErrInvalidCartKey,
	e.ErrInvalidQuantityDelta,
	e.ErrDetailsRequired,
	e.ErrInvalidProductID,
}

func ToHTTPResponse(err error) (int, string) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrInvalidPassword):
		return http.StatusUnauthorized, e.ErrInvalidPassword.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON читает тело запроса с ограничением размера и отклоняет неизвестные поля.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}
	return nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}
	return nil
}

// parseProductForm читает поля формы товара. Изображения передаются повторяющимся полем images.
func parseProductForm(r *http.Request) (*usecase.ProductForm, error) {
	const maxMemory = 1 << 20

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	images := make([]string, 0, len(r.PostForm["images"]))
	for _, id := range r.PostForm["images"] {
		if id = strings.TrimSpace(id); id != "" {
			images = append(images, id)
		}
	}

	return &usecase.ProductForm{
		Title:       r.PostFormValue("title"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
		Fit:         r.PostFormValue("fit"),
		Fabric:      r.PostFormValue("fabric"),
		Care:        r.PostFormValue("care"),
		Sizes:       r.PostFormValue("sizes"),
		Images:      images,
	}, nil
}

func parseImages(files []*multipart.FileHeader) ([]usecase.ProductImage, error) {
	if len(files) == 0 {
		return nil, e.ErrNoImages
	}
	if len(files) > maxImageCount {
		return nil, e.ErrTooManyImages
	}

	images := make([]usecase.ProductImage, 0, len(files))
	for _, fh := range files {
		data, mimeType, err := readFile(fh, maxFileSize)
		if err != nil {
			return nil, err
		}
		images = append(images, *usecase.NewProductImage(data, mimeType, int64(len(data)), fh.Filename))
	}
	return images, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, string, error) {
	if fh.Size > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, "", e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, "", e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	mimeType := http.DetectContentType(data[:min(len(data), 512)])
	switch mimeType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, "", e.Wrap(fh.Filename, e.ErrUnsupportedMediaType)
	}
	return data, mimeType, nil
}

func parseIndexParam(r *http.Request, name string) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, e.ErrInvalidCartIndex
	}
	return index, nil
}

// lineKeyParam возвращает ключ позиции из пути. Размер может содержать "/",
// поэтому клиент экранирует ключ, а chi отдаёт параметр из RawPath как есть.
func lineKeyParam(r *http.Request, name string) (string, error) {
	key, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil || key == "" {
		return "", e.ErrInvalidCartKey
	}
	return key, nil
}
