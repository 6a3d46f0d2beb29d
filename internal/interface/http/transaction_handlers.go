package http

import "net/http"

func (a *API) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user := getAuthUser(r.Context())
	req, err := a.parsePageParams(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	page, err := a.transactionSvc.GetPagedTransactions(r.Context(), user.UserID, req.PageIndex, req.PageSize)
	if err != nil {
		a.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
