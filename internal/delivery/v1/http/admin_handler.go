package http

import (
	"net/http"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

type AdminHandler struct {
	adminUC   usecase.AdminUC
	contentUC usecase.ContentUC
	authUC    usecase.AuthUC
	view      presenter
	logger    logger.Logger
}

func NewAdminHandler(
	adminUC usecase.AdminUC,
	contentUC usecase.ContentUC,
	authUC usecase.AuthUC,
	assets usecase.AssetURLBuilder,
	logger logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminUC:   adminUC,
		contentUC: contentUC,
		authUC:    authUC,
		view:      presenter{assets: assets},
		logger:    logger,
	}
}

// login godoc
// @Summary      Вход в админку
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Пароль"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /api/v1/admin/login [post]
func (h *AdminHandler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.authUC.Login(r.Context(), req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, LoginResponse{Token: token})
}

// logout godoc
// @Summary      Выход из админки
// @Tags         admin
// @Security     AdminToken
// @Success      204
// @Router       /api/v1/admin/logout [post]
func (h *AdminHandler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authUC.Logout(r.Context(), adminToken(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listProducts godoc
// @Summary      Список товаров для админки
// @Tags         admin
// @Security     AdminToken
// @Produce      json
// @Success      200  {array}   ProductResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/admin/products [get]
func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.adminUC.ListProducts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteSuccess(w, http.StatusOK, h.view.products(products))
}

// createProduct godoc
// @Summary      Создание товара
// @Description  Поля формы: title, price, description, fit, fabric, care, sizes (через запятую), images (повторяющееся поле с id ассетов).
// @Tags         admin
// @Security     AdminToken
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        title        formData  string  true   "Название"
// @Param        price        formData  string  true   "Цена"
// @Param        description  formData  string  false  "Описание"
// @Param        fit          formData  string  false  "Посадка"
// @Param        fabric       formData  string  false  "Ткань"
// @Param        care         formData  string  false  "Уход"
// @Param        sizes        formData  string  false  "Размеры через запятую"
// @Param        images       formData  []string  true  "Идентификаторы ассетов"
// @Success      201  {object}  ProductResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/admin/products [post]
func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.adminUC.CreateProduct(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Infof("product %s created with handle %q", product.ID, product.Handle)
	WriteSuccess(w, http.StatusCreated, h.view.product(product))
}

// updateProduct godoc
// @Summary      Обновление товара
// @Description  Handle пересчитывается из нового названия.
// @Tags         admin
// @Security     AdminToken
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        id  path      string  true  "ID товара"
// @Success      200 {object}  ProductResponse
// @Failure      400 {object}  ErrorResponse
// @Failure      404 {object}  ErrorResponse
// @Router       /api/v1/admin/products/{id} [put]
func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.adminUC.UpdateProduct(r.Context(), chi.URLParam(r, "id"), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.view.product(product))
}

// deleteProduct godoc
// @Summary      Удаление товара
// @Tags         admin
// @Security     AdminToken
// @Param        id  path  string  true  "ID товара"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/products/{id} [delete]
func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUC.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadAssets godoc
// @Summary      Загрузка изображений
// @Tags         admin
// @Security     AdminToken
// @Accept       multipart/form-data
// @Produce      json
// @Param        images  formData  file  true  "Изображения (jpeg, png, webp; до 10 файлов по 15 МиБ)"
// @Success      201     {object}  UploadAssetsResponse
// @Failure      400     {object}  ErrorResponse
// @Router       /api/v1/admin/assets [post]
func (h *AdminHandler) uploadAssets(w http.ResponseWriter, r *http.Request) {
	if err := ensureMultipartForm(r, maxUploadMemory); err != nil {
		h.fail(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	images, err := parseImages(r.MultipartForm.File["images"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	res, err := h.adminUC.UploadAssets(r.Context(), images)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	urls := make([]string, 0, len(res.AssetIDs))
	for _, id := range res.AssetIDs {
		urls = append(urls, h.view.assets.URLFor(id, usecase.AssetURLOptions{}))
	}
	WriteSuccess(w, http.StatusCreated, UploadAssetsResponse{AssetIDs: res.AssetIDs, URLs: urls})
}

// updateContent godoc
// @Summary      Обновление контента сайта
// @Tags         admin
// @Security     AdminToken
// @Accept       json
// @Produce      json
// @Param        body  body      SiteContentDTO  true  "Контент"
// @Success      200   {object}  SiteContentDTO
// @Failure      400   {object}  ErrorResponse
// @Router       /api/v1/admin/content [put]
func (h *AdminHandler) updateContent(w http.ResponseWriter, r *http.Request) {
	var req SiteContentDTO
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	content := req.toDomain()
	if err := h.contentUC.UpdateSiteContent(r.Context(), content); err != nil {
		h.fail(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, h.view.content(*content))
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if code, _ := ToHTTPResponse(err); code == http.StatusInternalServerError {
		h.logger.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		h.logger.Warnf("%d %s: %v", code, r.URL.Path, err)
	}
	WriteError(w, err)
}
