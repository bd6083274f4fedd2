package handlers

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/models"
	"github.com/yasinhessnawi1/inventory_backend/internal/service"
	"github.com/yasinhessnawi1/inventory_backend/internal/utils"
)

// ProductHandler handles product routes
type ProductHandler struct {
	productService ProductServiceInterface
	maxUploadBytes int64
}

// NewProductHandler creates a new ProductHandler.
// maxUploadBytes caps multipart bodies; non-positive uses the default.
func NewProductHandler(productService ProductServiceInterface, maxUploadBytes int64) *ProductHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = constants.DefaultMaxUploadBytes
	}
	return &ProductHandler{
		productService: productService,
		maxUploadBytes: maxUploadBytes,
	}
}

// CreateProduct handles creating a product from a multipart form or JSON body
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	in, image, cleanup, err := h.readProductRequest(w, r)
	defer cleanup()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	product, err := h.productService.Create(r.Context(), userID, in, image)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusCreated, product)
}

// ListProducts returns the current user's products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	products, err := h.productService.List(r.Context(), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, products)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	product, err := h.productService.Get(r.Context(), chi.URLParam(r, constants.ParamID), userID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, product)
}

// UpdateProduct replaces a product's fields and optionally its image
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	in, image, cleanup, err := h.readProductRequest(w, r)
	defer cleanup()
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	product, err := h.productService.Update(r.Context(), chi.URLParam(r, constants.ParamID), userID, in, image)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, product)
}

// UpdateQuantity changes only the quantity of a product
func (h *ProductHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	var update models.QuantityUpdate
	if err := utils.DecodeAndValidate(r, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.productService.UpdateQuantity(r.Context(), chi.URLParam(r, constants.ParamID), userID, &update); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgQuantityUpdated)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgNotAuthorized)
		return
	}

	if err := h.productService.Delete(r.Context(), chi.URLParam(r, constants.ParamID), userID); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.Message(w, constants.StatusOK, constants.MsgProductDeleted)
}

// readProductRequest extracts the product fields and the optional image.
// Multipart forms carry the image in the "image" field; any other content
// type is decoded as JSON without an image. The returned cleanup func is
// never nil and must be called once the request has been served, including
// when an error is returned.
func (h *ProductHandler) readProductRequest(w http.ResponseWriter, r *http.Request) (*models.ProductInput, *service.ImageUpload, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(constants.HeaderContentType))
	if mediaType != constants.ContentTypeMultipart {
		var in models.ProductInput
		if err := utils.DecodeJSON(r, &in); err != nil {
			return nil, nil, noop, err
		}
		return &in, nil, noop, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(constants.MultipartMemoryLimit); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, noop, utils.NewBadRequestError(constants.MsgRequestBodyTooLarge)
		}
		return nil, nil, noop, utils.NewBadRequestError(err.Error())
	}

	in := &models.ProductInput{
		Name:        r.PostFormValue("name"),
		SKU:         r.PostFormValue("sku"),
		Category:    r.PostFormValue("category"),
		Quantity:    models.NumericString(r.PostFormValue("quantity")),
		Price:       models.NumericString(r.PostFormValue("price")),
		Description: r.PostFormValue("description"),
	}

	removeForm := func() { removeMultipartFiles(r.MultipartForm) }

	file, header, err := r.FormFile(constants.FormFieldImage)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, removeForm, nil
		}
		return nil, nil, removeForm, utils.NewBadRequestError(err.Error())
	}

	image := &service.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get(constants.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	}

	cleanup := func() {
		if err := file.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close uploaded file")
		}
		removeMultipartFiles(r.MultipartForm)
	}

	return in, image, cleanup, nil
}

func removeMultipartFiles(form *multipart.Form) {
	if form == nil {
		return
	}
	if err := form.RemoveAll(); err != nil {
		log.Warn().Err(err).Msg("Failed to remove temporary upload files")
	}
}
