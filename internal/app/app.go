package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/rawline/internal/cfg"
	v1Grpc "github.com/DRSN-tech/rawline/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/rawline/internal/delivery/v1/http"
	cloudinaryInfra "github.com/DRSN-tech/rawline/internal/infrastructure/cloudinary"
	"github.com/DRSN-tech/rawline/internal/infrastructure/gemini"
	"github.com/DRSN-tech/rawline/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/rawline/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/rawline/internal/repository/minio"
	"github.com/DRSN-tech/rawline/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/rawline/internal/repository/pgdb/converter"
	qdrantRepo "github.com/DRSN-tech/rawline/internal/repository/qdrant"
	"github.com/DRSN-tech/rawline/internal/repository/redis"
	redisConv "github.com/DRSN-tech/rawline/internal/repository/redis/converter"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/clients"
	"github.com/DRSN-tech/rawline/pkg/closer"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/DRSN-tech/rawline/pkg/postgres"
	"github.com/DRSN-tech/rawline/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout    = 10 * time.Second
	cleanupWaitTimeout = 5 * time.Second
	clientInitTimeout  = 10 * time.Second
	kafkaTopicTimeout  = 10 * time.Second
	forcedCloseTimeout = 3 * time.Second
)

// assetHost — хостинг ассетов с ожиданием фоновой очистки при остановке.
type assetHost interface {
	usecase.AssetHost
	WaitForCleanup(ctx context.Context) error
}

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
	assets  assetHost
	admin   *usecase.AdminUseCase

	// bgCtx живёт до остановки приложения: фоновые задачи очистки ассетов завершаются вместе с ним.
	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// NewApp поднимает клиенты хранилищ, собирает сценарии и серверы.
// При ошибке уже открытые ресурсы закрываются.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	bgCtx, bgCancel := context.WithCancel(context.Background())
	a := &App{
		cfg:      cfg,
		logger:   log,
		closer:   closer.NewCloser(forcedCloseTimeout),
		bgCtx:    bgCtx,
		bgCancel: bgCancel,
	}
	defer func() {
		if err != nil {
			bgCancel()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if cerr := a.closer.Close(ctx); cerr != nil {
				log.Warnf("%v", cerr)
			}
		}
	}()

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, err
	}
	a.closer.AddSimple("postgres", func() error {
		db.Close()
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.AddSimple("redis", redisClient.Close)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), clientInitTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, err
	}

	qdrantClient, err := clients.NewQdrantClient(cfg.Qdrant)
	if err != nil {
		log.Errorf(err, "failed to initialize qdrant")
		return nil, err
	}
	a.closer.AddSimple("qdrant", qdrantClient.Close)
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), clientInitTimeout)
	defer qdrantCancel()
	if err := clients.EnsureCollection(qdrantCtx, qdrantClient); err != nil {
		log.Errorf(err, "failed to initialize qdrant collection")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.assets, err = initAssets(bgCtx, cfg, log)
	if err != nil {
		return nil, err
	}

	models, err := gemini.NewModels(context.Background(), cfg.GenAI)
	if err != nil {
		log.Errorf(err, "failed to initialize gemini client")
		return nil, err
	}
	if models == nil {
		log.Warnf("GEMINI_API_KEY is not set: fit advice and similar products are disabled")
	}

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, err
	}
	a.closer.AddSimple("kafka producer", producer.Close)
	if err := producer.EnsureTopic(kafkaTopicTimeout); err != nil {
		log.Warnf("kafka topic %s is not ready: %v", cfg.Kafka.Topic, err)
	}

	productRepo := pgdb.NewProductRepo(db.Pool, &pgdbConv.ProductConverterImpl{})
	contentRepo := pgdb.NewSiteContentRepo(db.Pool, &pgdbConv.SiteContentConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, &pgdbConv.OutboxEventConverterImpl{})
	txManager := tr.NewManager(db.Pool)

	redisProductConv := &redisConv.ProductConverterImpl{}
	cacheRepo := redis.NewCacheRepo(redisClient, redisProductConv, cfg.Redis, log)
	cartRepo := redis.NewCartRepo(redisClient, redisProductConv, cfg.Redis, log)
	sessionRepo := redis.NewAdminSessionRepo(redisClient)
	embRepo := qdrantRepo.NewEmbeddingRepo(qdrantClient.Client, cfg.Qdrant)

	advisor := gemini.NewAdvisor(models, cfg.GenAI, log)
	embedder := gemini.NewEmbedder(models, cfg.GenAI, cfg.Qdrant.VectorSize, log)

	catalogUC := usecase.NewCatalogUseCase(productRepo, cacheRepo, embRepo, advisor, log)
	contentUC := usecase.NewContentUseCase(contentRepo, outboxRepo, txManager, log)
	cartUC := usecase.NewCartUseCase(cartRepo, catalogUC, log)
	authUC := usecase.NewAuthUseCase(sessionRepo, cfg.Admin.Password, cfg.Redis.AdminSessionTTL, log)
	a.admin = usecase.NewAdminUseCase(
		productRepo,
		outboxRepo,
		cacheRepo,
		embRepo,
		embedder,
		a.assets,
		txManager,
		cfg.Assets.Folder,
		log,
	)

	a.worker = kafka.NewOutboxWorker(outboxRepo, log, producer, pgdb.OutboxChannel, db.Dsn)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices(catalogUC)

	r := chi.NewRouter()
	v1Http.NewRouter(r, cfg.Http.SwaggerHost, log).Init(v1Http.UseCases{
		Catalog: catalogUC,
		Content: contentUC,
		Cart:    cartUC,
		Admin:   a.admin,
		Auth:    authUC,
		Assets:  a.assets,
	})
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	return a, nil
}

// Run запускает серверы и воркер outbox и блокируется до сигнала или фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.bgCtx)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()
	return appErr
}

func (a *App) stop() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		a.logger.Warnf("gRPC server shutdown: %v", err)
	}

	a.worker.Stop()
	a.logger.Infof("Outbox worker stopped")

	cleanupCtx, cleanupCancel := context.WithTimeout(shutdownCtx, cleanupWaitTimeout)
	if err := a.assets.WaitForCleanup(cleanupCtx); err != nil {
		a.logger.Warnf("asset cleanup did not finish before shutdown, some orphaned assets may remain: %v", err)
	} else {
		a.logger.Infof("Asset cleanup completed")
	}
	cleanupCancel()

	indexCtx, indexCancel := context.WithTimeout(shutdownCtx, cleanupWaitTimeout)
	if err := a.admin.WaitForIndexing(indexCtx); err != nil {
		a.logger.Warnf("product indexing did not finish before shutdown: %v", err)
	}
	indexCancel()
	a.bgCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("%v", err)
	}

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		db.Close()
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}

// initAssets выбирает хостинг ассетов по ASSET_PROVIDER.
func initAssets(bgCtx context.Context, cfg *config.Config, log logger.Logger) (assetHost, error) {
	switch cfg.Assets.Provider {
	case config.AssetProviderMinio:
		minioClient, err := clients.NewMinIOClient(cfg.Minio)
		if err != nil {
			log.Errorf(err, "failed to initialize minio client")
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), clientInitTimeout)
		defer cancel()
		if err := clients.EnsureBucket(ctx, minioClient, cfg.Minio.BucketName); err != nil {
			log.Errorf(err, "failed to initialize MinIO bucket")
			return nil, err
		}

		imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
		return minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, cfg.Assets.UploadImagesLimit, log, bgCtx), nil

	case config.AssetProviderCloudinary:
		cld, err := clients.NewCloudinaryClient(cfg.Cloudinary)
		if err != nil {
			log.Errorf(err, "failed to initialize cloudinary client")
			return nil, err
		}
		return cloudinaryInfra.NewCloudinaryInfrastructure(cld, cfg.Assets.UploadImagesLimit, log, bgCtx), nil

	default:
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrUnknownAssetProvider)
	}
}
