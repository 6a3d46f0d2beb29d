package http

import (
	"net/http"

	businessuc "example.com/softuni-fest/internal/usecase/business"
)

type registerBusinessRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

func (a *API) handleRegisterBusiness(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	var req registerBusinessRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	b, err := a.businessSvc.Register(r.Context(), user.UserID, businessuc.RegisterInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapBusiness(b))
}

func (a *API) handleGetMyBusiness(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	b, err := a.businessSvc.GetByUser(r.Context(), user.UserID)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapBusiness(b))
}

func (a *API) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	b, err := a.businessSvc.GetByID(r.Context(), id)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapBusiness(b))
}
