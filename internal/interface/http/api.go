package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	dommedia "example.com/softuni-fest/internal/domain/media"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domtx "example.com/softuni-fest/internal/domain/transaction"
	domuser "example.com/softuni-fest/internal/domain/user"
	"example.com/softuni-fest/internal/pagination"
	authuc "example.com/softuni-fest/internal/usecase/auth"
	businessuc "example.com/softuni-fest/internal/usecase/business"
	productuc "example.com/softuni-fest/internal/usecase/product"
	transactionuc "example.com/softuni-fest/internal/usecase/transaction"
	useruc "example.com/softuni-fest/internal/usecase/user"
)

const defaultMaxUploadBytes = 10 << 20

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type API struct {
	authSvc        *authuc.Service
	userSvc        *useruc.Service
	businessSvc    *businessuc.Service
	productSvc     *productuc.Service
	transactionSvc *transactionuc.Service
	tokenSvc       authuc.TokenService
	validator      *validator.Validate
	logger         *slog.Logger
	db             Pinger
	imageDir       string
	imagePrefix    string
	maxUploadBytes int64
}

type Dependencies struct {
	AuthService        *authuc.Service
	UserService        *useruc.Service
	BusinessService    *businessuc.Service
	ProductService     *productuc.Service
	TransactionService *transactionuc.Service
	TokenService       authuc.TokenService
	Logger             *slog.Logger

	// DB is pinged by /health/db; nil means the in-memory store.
	DB Pinger

	// ImageDir is served under ImagePrefix when set.
	ImageDir       string
	ImagePrefix    string
	MaxUploadBytes int64
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxUpload := deps.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &API{
		authSvc:        deps.AuthService,
		userSvc:        deps.UserService,
		businessSvc:    deps.BusinessService,
		productSvc:     deps.ProductService,
		transactionSvc: deps.TransactionService,
		tokenSvc:       deps.TokenService,
		validator:      validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
		db:             deps.DB,
		imageDir:       deps.ImageDir,
		imagePrefix:    deps.ImagePrefix,
		maxUploadBytes: maxUpload,
	}
}

func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "multipart/form-data", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/db", a.handleHealthDB)

	if a.imageDir != "" && a.imagePrefix != "" {
		fs := http.StripPrefix(a.imagePrefix, http.FileServer(http.Dir(a.imageDir)))
		r.Handle(a.imagePrefix+"/*", fs)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", a.handleRegister)
		r.Post("/auth/login", a.handleLogin)
		r.Get("/products", a.handleListProducts)
		r.With(a.optionalAuth).Get("/products/{id}", a.handleGetProduct)
		r.Get("/businesses/{id}", a.handleGetBusiness)

		r.Group(func(pr chi.Router) {
			pr.Use(a.authMiddleware)
			pr.Post("/products/{id}/purchase", a.handlePurchase)
			pr.Get("/me", a.handleMe)
			pr.Get("/me/business", a.handleGetMyBusiness)

			pr.Group(func(br chi.Router) {
				br.Use(a.requireRoles(domuser.RoleCodeBusiness))
				br.Post("/products", a.handleCreateProduct)
				br.Put("/products/{id}", a.handleUpdateProduct)
				br.Delete("/products/{id}", a.handleDeleteProduct)
				br.Post("/me/business", a.handleRegisterBusiness)
				br.Get("/me/products", a.handleListMyProducts)
			})
		})
	})

	r.Route("/transaction", func(r chi.Router) {
		r.Use(a.authMiddleware)
		r.Get("/transactions", a.handleListTransactions)
	})

	return r
}

func (a *API) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "memory"})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := a.db.PingContext(ctx); err != nil {
		a.logger.ErrorContext(r.Context(), "database ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			a.logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				slog.String("request_id", chimw.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// respondBadRequest renders validator failures field by field.
func respondBadRequest(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
		return
	}
	var perr *paramError
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Details: []fieldError{{Field: perr.Field, Rule: perr.Rule}},
		})
		return
	}
	respondError(w, http.StatusBadRequest, err)
}

func parseIDParam(r *http.Request, key string) (int64, error) {
	idStr := chi.URLParam(r, key)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, &paramError{Field: key, Rule: "int"}
	}
	return id, nil
}

func mapUser(u *domuser.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"name":     u.Name,
		"email":    u.Email,
		"roleCode": u.RoleCode,
	}
}

func mapBusiness(b *dombusiness.Business) map[string]any {
	return map[string]any{
		"id":          b.ID,
		"userId":      b.UserID,
		"name":        b.Name,
		"description": b.Description,
		"createdAt":   b.CreatedAt,
	}
}

var errInternal = errors.New("internal server error")

func (a *API) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domuser.ErrUserNotFound),
		errors.Is(err, dombusiness.ErrBusinessNotFound),
		errors.Is(err, domproduct.ErrProductNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, pagination.ErrPageIndexOutOfRange),
		errors.Is(err, pagination.ErrPageSizeOutOfRange),
		errors.Is(err, pagination.ErrInvalidSortDirection),
		errors.Is(err, domproduct.ErrInvalidSortKey):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, domproduct.ErrMissingImage),
		errors.Is(err, domproduct.ErrInvalidName),
		errors.Is(err, domproduct.ErrInvalidPrice),
		errors.Is(err, dombusiness.ErrInvalidName),
		errors.Is(err, dommedia.ErrUnsupportedType),
		errors.Is(err, domuser.ErrInvalidCredential),
		errors.Is(err, domuser.ErrInvalidRoleCode),
		errors.Is(err, domtx.ErrSelfPurchase):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domuser.ErrEmailAlreadyUsed),
		errors.Is(err, dombusiness.ErrBusinessAlreadyExists):
		respondError(w, http.StatusConflict, err)
	case errors.Is(err, domuser.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, domuser.ErrUnauthorized)
	case errors.Is(err, errForbidden):
		respondError(w, http.StatusForbidden, err)
	default:
		a.logger.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondError(w, http.StatusInternalServerError, errInternal)
	}
}
