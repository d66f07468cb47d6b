package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	AssetProviderCloudinary = "cloudinary"
	AssetProviderMinio      = "minio"
)

type Config struct {
	Http       *HTTPConfig
	Grpc       *GRPCConfig
	Db         *PGDBCfg
	Redis      *RedisCfg
	Assets     *AssetsCfg
	Minio      *MinIOCfg
	Cloudinary *CloudinaryCfg
	Qdrant     *QdrantCfg
	GenAI      *GenAICfg
	Kafka      *KafkaCfg
	Admin      *AdminCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerHost  string
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsURL string
	MaxConns      int32 // 0 оставляет значение pgxpool по умолчанию
}

type RedisCfg struct {
	Addr            string
	Password        string
	User            string
	DB              int
	MaxRetries      int
	DialTimeout     time.Duration
	Timeout         time.Duration
	ProductTTL      time.Duration // TTL кэша каталога
	CartTTL         time.Duration // время жизни корзины сессии
	AdminSessionTTL time.Duration // время жизни токена админки
}

// AssetsCfg общие настройки хостинга изображений.
type AssetsCfg struct {
	Provider          string // cloudinary | minio
	Folder            string // префикс (папка) для загружаемых изображений
	UploadImagesLimit int    // лимит одновременных загрузок
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Название бакета с изображениями товаров
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type CloudinaryCfg struct {
	URL string // cloudinary://<api_key>:<api_secret>@<cloud_name>
}

type QdrantCfg struct {
	Port                 int
	Host                 string
	ApiKey               string
	QdrantCollectionName string
	UseTLS               bool
	VectorSize           uint64
}

type GenAICfg struct {
	APIKey         string // пустой ключ отключает советы по посадке и эмбеддинги
	Model          string
	EmbeddingModel string
	Timeout        time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// AdminCfg — настройки косметического пароля админки.
type AdminCfg struct {
	Password string // открытый текст или bcrypt-хеш ($2a$/$2b$/$2y$)
}

// Load загружает конфигурацию из окружения и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	assets, err := loadAssetsCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log, assets.Provider == AssetProviderMinio)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cloudinary, err := loadCloudinaryCfg(assets.Provider == AssetProviderCloudinary)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	qdrant, err := loadQdrantCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	genAI, err := loadGenAICfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	admin, err := loadAdminCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Grpc:       loadGRPCConfig(),
		Db:         db,
		Redis:      redis,
		Assets:     assets,
		Minio:      minio,
		Cloudinary: cloudinary,
		Qdrant:     qdrant,
		GenAI:      genAI,
		Kafka:      kafka,
		Admin:      admin,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "rawline.catalog"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	brokers := make([]string, 0)
	for _, b := range strings.Split(brokerStr, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, e.Wrap("KAFKA_BROKERS", e.ErrIncorrectEnvVariable)
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadAssetsCfg() (*AssetsCfg, error) {
	const (
		defaultProvider = AssetProviderCloudinary
		defaultFolder   = "rawline"
		defaultLimit    = 4
	)

	provider := strings.ToLower(getEnvOrDefault("ASSET_PROVIDER", defaultProvider))
	if provider != AssetProviderCloudinary && provider != AssetProviderMinio {
		return nil, e.Wrap(provider, e.ErrUnknownAssetProvider)
	}

	limit, err := parseIntEnv("UPLOAD_IMAGES_LIMIT", defaultLimit)
	if err != nil || limit <= 0 {
		return nil, e.Wrap("UPLOAD_IMAGES_LIMIT", e.ErrIncorrectEnvVariable)
	}

	return &AssetsCfg{
		Provider:          provider,
		Folder:            getEnvOrDefault("ASSET_FOLDER", defaultFolder),
		UploadImagesLimit: limit,
	}, nil
}

func loadMinIOCfg(log logger.Logger, required bool) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	bucket := getEnv("BUCKET_NAME")
	if required && bucket == "" {
		return nil, fmt.Errorf("BUCKET_NAME is required for the minio asset provider")
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadCloudinaryCfg(required bool) (*CloudinaryCfg, error) {
	url := getEnv("CLOUDINARY_URL")
	if required && url == "" {
		return nil, fmt.Errorf("CLOUDINARY_URL is required for the cloudinary asset provider")
	}

	return &CloudinaryCfg{URL: url}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultSwaggerHost  = "localhost:8080"
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerHost:  getEnvOrDefault("SWAGGER_HOST", defaultSwaggerHost),
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMigrationsURL = "file://db/migrations"
		defaultMaxConns      = 10
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MigrationsURL: getEnvOrDefault("MIGRATIONS_URL", defaultMigrationsURL),
		MaxConns:      int32(maxConns),
	}, nil
}

func loadQdrantCfg(log logger.Logger) (*QdrantCfg, error) {
	const (
		defaultHost           = "qdrant"
		defaultQdrantGRPCPort = "6334"
		defaultUseTLS         = false
		defaultVectorSize     = "768"
		defaultCollection     = "rawline_products"
	)

	port, err := strconv.Atoi(getEnvOrDefault("QDRANT_GRPC_PORT", defaultQdrantGRPCPort))
	if err != nil {
		log.Errorf(err, "invalid QDRANT_GRPC_PORT")
		return nil, err
	}

	useTLS, err := strconv.ParseBool(getEnvOrDefault("QDRANT_USE_TLS", strconv.FormatBool(defaultUseTLS)))
	if err != nil {
		log.Errorf(err, "invalid QDRANT_USE_TLS")
		return nil, err
	}

	vectorSize, err := strconv.ParseUint(getEnvOrDefault("VECTOR_SIZE", defaultVectorSize), 10, 64)
	if err != nil {
		log.Errorf(err, "invalid VECTOR_SIZE")
		return nil, err
	}

	return &QdrantCfg{
		Host:                 getEnvOrDefault("QDRANT_HOST", defaultHost),
		Port:                 port,
		ApiKey:               getEnv("QDRANT__SERVICE__API_KEY"),
		QdrantCollectionName: getEnvOrDefault("COLLECTION_NAME", defaultCollection),
		UseTLS:               useTLS,
		VectorSize:           vectorSize,
	}, nil
}

func loadGenAICfg(log logger.Logger) (*GenAICfg, error) {
	const (
		defaultModel          = "gemini-2.5-flash"
		defaultEmbeddingModel = "gemini-embedding-001"
		defaultTimeout        = 15 * time.Second
	)

	timeout, err := parseDurationEnv("GENAI_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid GENAI_TIMEOUT")
		return nil, err
	}

	return &GenAICfg{
		APIKey:         getEnv("GEMINI_API_KEY"),
		Model:          getEnvOrDefault("GENAI_MODEL", defaultModel),
		EmbeddingModel: getEnvOrDefault("GENAI_EMBEDDING_MODEL", defaultEmbeddingModel),
		Timeout:        timeout,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr            = "localhost:6379"
		defaultDB              = 0
		defaultMaxRetries      = 3
		defaultDialTimeout     = 5 * time.Second
		defaultReadTimeout     = 3 * time.Second
		defaultWriteTimeout    = 3 * time.Second
		defaultProductTTL      = 3 * time.Minute
		defaultCartTTL         = 72 * time.Hour
		defaultAdminSessionTTL = 12 * time.Hour
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	cartTTL, err := parseDurationEnv("CART_TTL", defaultCartTTL)
	if err != nil {
		log.Errorf(err, "invalid CART_TTL")
		return nil, err
	}

	adminSessionTTL, err := parseDurationEnv("ADMIN_SESSION_TTL", defaultAdminSessionTTL)
	if err != nil {
		log.Errorf(err, "invalid ADMIN_SESSION_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:            getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:        getEnv("REDIS_PASSWORD"),
		User:            getEnv("REDIS_USER"),
		DB:              db,
		MaxRetries:      maxRetries,
		DialTimeout:     dialTimeout,
		Timeout:         timeout,
		ProductTTL:      productTTL,
		CartTTL:         cartTTL,
		AdminSessionTTL: adminSessionTTL,
	}, nil
}

func loadAdminCfg() (*AdminCfg, error) {
	password := getEnv("ADMIN_PASSWORD")
	if password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	return &AdminCfg{Password: password}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
