package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	dommedia "example.com/softuni-fest/internal/domain/media"
	productuc "example.com/softuni-fest/internal/usecase/product"
)

type productForm struct {
	Name        string `validate:"required,max=200"`
	Description string `validate:"max=4000"`
	Price       string `validate:"required"`
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := a.parseProductQuery(r)
	if err != nil {
		a.respondQueryError(w, r, err)
		return
	}

	page, err := a.productSvc.GetPagedProducts(r.Context(), q)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) handleListMyProducts(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	q, err := a.parseProductQuery(r)
	if err != nil {
		a.respondQueryError(w, r, err)
		return
	}

	b, err := a.businessSvc.GetByUser(r.Context(), user.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	q.Filter.BusinessID = &b.ID

	page, err := a.productSvc.GetPagedProducts(r.Context(), q)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var view *productuc.ProductView
	if user := getAuthUser(r.Context()); user != nil {
		view, err = a.productSvc.GetByIDForUser(r.Context(), id, user.UserID)
	} else {
		view, err = a.productSvc.GetByID(r.Context(), id)
	}
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	in, cleanup, ok := a.readProductForm(w, r)
	if !ok {
		return
	}
	defer cleanup()

	view, err := a.productSvc.AddProduct(r.Context(), in, user.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := a.authorizeOwner(w, r)
	if !ok {
		return
	}
	in, cleanup, ok := a.readProductForm(w, r)
	if !ok {
		return
	}
	defer cleanup()
	in.ID = id

	view, err := a.productSvc.Update(r.Context(), in)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := a.authorizeOwner(w, r)
	if !ok {
		return
	}
	if err := a.productSvc.Delete(r.Context(), id); err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handlePurchase(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	view, err := a.transactionSvc.Purchase(r.Context(), user.UserID, id)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// authorizeOwner resolves the product id and checks that the caller's business
// owns it. A missing product is reported as 404 rather than 403.
func (a *API) authorizeOwner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return 0, false
	}

	user := getAuthUser(r.Context())
	owner, err := a.productSvc.IsOwner(r.Context(), user.UserID, id)
	if err != nil {
		a.handleDomainError(w, r, err)
		return 0, false
	}
	if !owner {
		if _, err := a.productSvc.GetByID(r.Context(), id); err != nil {
			a.handleDomainError(w, r, err)
			return 0, false
		}
		a.handleDomainError(w, r, errForbidden)
		return 0, false
	}
	return id, true
}

// readProductForm parses the multipart body. The returned cleanup closes the
// uploaded file and removes any temporary parts.
func (a *API) readProductForm(w http.ResponseWriter, r *http.Request) (productuc.ProductInput, func(), bool) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	if err := r.ParseMultipartForm(a.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, err)
			return productuc.ProductInput{}, noop, false
		}
		respondBadRequest(w, err)
		return productuc.ProductInput{}, noop, false
	}

	form := productForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       strings.TrimSpace(r.FormValue("price")),
	}
	if err := a.validator.Struct(form); err != nil {
		respondBadRequest(w, err)
		return productuc.ProductInput{}, noop, false
	}
	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		respondBadRequest(w, &paramError{Field: "price", Rule: "decimal"})
		return productuc.ProductInput{}, noop, false
	}

	in := productuc.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
	}

	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, cleanup, true
	case err != nil:
		respondBadRequest(w, err)
		return productuc.ProductInput{}, cleanup, false
	}

	in.Image, err = imageFromPart(file, header)
	if err != nil {
		_ = file.Close()
		respondBadRequest(w, err)
		return productuc.ProductInput{}, cleanup, false
	}
	return in, func() {
		_ = file.Close()
		cleanup()
	}, true
}

// imageFromPart types the upload by its leading bytes; the client-declared
// Content-Type is ignored.
func imageFromPart(file multipart.File, header *multipart.FileHeader) (*dommedia.Image, error) {
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind image: %w", err)
	}
	return &dommedia.Image{
		Filename:    header.Filename,
		ContentType: mt.String(),
		Size:        header.Size,
		Body:        file,
	}, nil
}

// respondQueryError separates unparsable parameters (400 with details) from
// domain errors raised while interpreting them.
func (a *API) respondQueryError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *paramError
	var verrs validator.ValidationErrors
	if errors.As(err, &perr) || errors.As(err, &verrs) {
		respondBadRequest(w, err)
		return
	}
	a.handleDomainError(w, r, err)
}
