package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	dombusiness "example.com/softuni-fest/internal/domain/business"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domuser "example.com/softuni-fest/internal/domain/user"
	"example.com/softuni-fest/internal/infra/logging"
	"example.com/softuni-fest/internal/infra/persistence/memory"
	"example.com/softuni-fest/internal/infra/security"
	"example.com/softuni-fest/internal/infra/storage"
	authuc "example.com/softuni-fest/internal/usecase/auth"
	businessuc "example.com/softuni-fest/internal/usecase/business"
	productuc "example.com/softuni-fest/internal/usecase/product"
	transactionuc "example.com/softuni-fest/internal/usecase/transaction"
	useruc "example.com/softuni-fest/internal/usecase/user"
)

type testServer struct {
	router   chi.Router
	store    *memory.Store
	tokens   *security.JWTService
	imageDir string
}

type serverOption func(*Dependencies)

func withDB(p Pinger) serverOption {
	return func(d *Dependencies) { d.DB = p }
}

func withMaxUpload(n int64) serverOption {
	return func(d *Dependencies) { d.MaxUploadBytes = n }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	store := memory.NewStore()
	logger := logging.Discard()
	tokens := security.NewJWTService("test-secret", time.Hour)
	passwords := security.NewBcryptService(4)

	dir := t.TempDir()
	files, err := storage.NewLocalStore(dir, "/images")
	require.NoError(t, err)

	deps := Dependencies{
		AuthService:        authuc.NewService(store.Users(), passwords, tokens),
		UserService:        useruc.NewService(store.Users(), passwords, logger),
		BusinessService:    businessuc.NewService(store.Businesses(), store.Users(), logger),
		ProductService:     productuc.NewService(store.Products(), store.Businesses(), files, productuc.WithLogger(logger)),
		TransactionService: transactionuc.NewService(store.Transactions(), store.Products(), store.Businesses(), logger),
		TokenService:       tokens,
		Logger:             logger,
		ImageDir:           dir,
		ImagePrefix:        "/images",
	}
	for _, opt := range opts {
		opt(&deps)
	}

	return &testServer{
		router:   NewAPI(deps).Router(),
		store:    store,
		tokens:   tokens,
		imageDir: dir,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) user(t *testing.T, id string, role domuser.RoleCode) string {
	t.Helper()
	u := &domuser.User{
		ID:       id,
		Name:     "User " + id,
		Email:    id + "@fest.bg",
		RoleCode: role,
	}
	_, err := s.store.Users().Create(context.Background(), u)
	require.NoError(t, err)
	token, err := s.tokens.GenerateToken(u)
	require.NoError(t, err)
	return token
}

func (s *testServer) business(t *testing.T, userID, name string) *dombusiness.Business {
	t.Helper()
	b, err := s.store.Businesses().Create(context.Background(), &dombusiness.Business{UserID: userID, Name: name})
	require.NoError(t, err)
	return b
}

func (s *testServer) product(t *testing.T, businessID int64, name, price string) *domproduct.Product {
	t.Helper()
	p, err := s.store.Products().Create(context.Background(), &domproduct.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		BusinessID: businessID,
		ImageURL:   "/images/" + name + ".png",
	})
	require.NoError(t, err)
	return p
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, file.name))
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngFile() *formFile {
	return &formFile{name: "cake.png", contentType: "image/png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDRcake")}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type failingPinger struct{}

func (failingPinger) PingContext(ctx context.Context) error { return errors.New("connection refused") }

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/health/db", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok","database":"memory"}`, rec.Body.String())

	down := newTestServer(t, withDB(failingPinger{}))
	rec = down.do(httptest.NewRequest(http.MethodGet, "/health/db", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Elena",
		"email":    "Elena@Fest.bg",
		"password": "secret123",
		"roleCode": "BUSINESS",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	require.Equal(t, "elena@fest.bg", created["email"])
	require.Equal(t, "BUSINESS", created["roleCode"])

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Elena again",
		"email":    "elena@fest.bg",
		"password": "secret123",
	}))
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "elena@fest.bg",
		"password": "secret123",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}](t, rec)
	require.NotEmpty(t, login.Token)

	claims, err := srv.tokens.ParseToken(login.Token)
	require.NoError(t, err)
	require.Equal(t, created["id"], claims.UserID)

	rec = srv.do(jsonRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "elena@fest.bg",
		"password": "wrong-password",
	}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_ValidationDetails(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(jsonRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Bad",
		"email":    "not-an-email",
		"password": "123",
	}))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[struct {
		Error   string       `json:"error"`
		Details []fieldError `json:"details"`
	}](t, rec)
	require.Equal(t, "validation failed", body.Error)
	require.ElementsMatch(t, []fieldError{
		{Field: "Email", Rule: "email"},
		{Field: "Password", Rule: "min", Param: "6"},
	}, body.Details)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method, target string
	}{
		{http.MethodGet, "/transaction/transactions"},
		{http.MethodGet, "/api/v1/me/business"},
		{http.MethodPost, "/api/v1/products/1/purchase"},
		{http.MethodDelete, "/api/v1/products/1"},
	} {
		rec := srv.do(httptest.NewRequest(tc.method, tc.target, nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, tc.target)
	}

	req := httptest.NewRequest(http.MethodGet, "/transaction/transactions", nil)
	rec := srv.do(withToken(req, "garbage"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
