package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"example.com/softuni-fest/internal/config"
	dombusiness "example.com/softuni-fest/internal/domain/business"
	dommedia "example.com/softuni-fest/internal/domain/media"
	domproduct "example.com/softuni-fest/internal/domain/product"
	domtx "example.com/softuni-fest/internal/domain/transaction"
	domuser "example.com/softuni-fest/internal/domain/user"
	"example.com/softuni-fest/internal/infra/cache"
	"example.com/softuni-fest/internal/infra/persistence/memory"
	"example.com/softuni-fest/internal/infra/persistence/sqlstore"
	"example.com/softuni-fest/internal/infra/security"
	"example.com/softuni-fest/internal/infra/storage"
	httpapi "example.com/softuni-fest/internal/interface/http"
	authuc "example.com/softuni-fest/internal/usecase/auth"
	businessuc "example.com/softuni-fest/internal/usecase/business"
	productuc "example.com/softuni-fest/internal/usecase/product"
	transactionuc "example.com/softuni-fest/internal/usecase/transaction"
	useruc "example.com/softuni-fest/internal/usecase/user"
)

// App is the wired router plus the resources it holds open.
type App struct {
	Handler *chi.Mux
	closers []func() error
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

type repositories struct {
	users        domuser.Repository
	businesses   dombusiness.Repository
	products     domproduct.Repository
	transactions domtx.Repository
}

func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}
	fail := func(err error) (*App, error) {
		_ = a.Close()
		return nil, err
	}

	var (
		repos repositories
		db    *sqlstore.DB
	)
	switch cfg.DBDriver {
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			users:        store.Users(),
			businesses:   store.Businesses(),
			products:     store.Products(),
			transactions: store.Transactions(),
		}
		logger.Warn("using in-memory store, data is lost on restart")
	default:
		var err error
		db, err = sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, db.Close)
		repos = repositories{
			users:        sqlstore.NewUserRepository(db),
			businesses:   sqlstore.NewBusinessRepository(db),
			products:     sqlstore.NewProductRepository(db),
			transactions: sqlstore.NewTransactionRepository(db),
		}
		logger.Info("connected to database", "driver", db.Dialect().String())
	}

	var (
		files    dommedia.Store
		imageDir string
	)
	switch cfg.StorageBackend {
	case "gcs":
		gcs, err := storage.NewCloudStorage(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, gcs.Close)
		files = gcs
		logger.Info("storing images in cloud storage", "bucket", cfg.GCSBucket)
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicImagePrefix)
		if err != nil {
			return fail(err)
		}
		files = local
		imageDir = local.Dir()
		logger.Info("storing images on disk", "dir", imageDir)
	}

	productOpts := []productuc.Option{productuc.WithLogger(logger)}
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fail(err)
		}
		a.closers = append(a.closers, client.Close)
		productOpts = append(productOpts, productuc.WithCache(cache.NewProductCache(client, cfg.CacheTTL)))
		logger.Info("product cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	tokens := security.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	passwords := security.NewBcryptService(0)

	deps := httpapi.Dependencies{
		AuthService:        authuc.NewService(repos.users, passwords, tokens),
		UserService:        useruc.NewService(repos.users, passwords, logger),
		BusinessService:    businessuc.NewService(repos.businesses, repos.users, logger),
		ProductService:     productuc.NewService(repos.products, repos.businesses, files, productOpts...),
		TransactionService: transactionuc.NewService(repos.transactions, repos.products, repos.businesses, logger),
		TokenService:       tokens,
		Logger:             logger,
		ImageDir:           imageDir,
		ImagePrefix:        cfg.PublicImagePrefix,
		MaxUploadBytes:     cfg.MaxUploadBytes,
	}
	if db != nil {
		deps.DB = db
	}

	a.Handler = httpapi.NewAPI(deps).Router()
	return a, nil
}
