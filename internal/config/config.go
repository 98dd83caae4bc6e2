package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type Upload struct {
	Dir        string // where processed images are written (disk backend)
	PublicBase string // public URL prefix the API returns
	Backend    string // "disk" or "minio"
	MaxSize    int64
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Config struct {
	ServerPort    int
	DB            DB
	MinIO         MinIO
	Upload        Upload
	RateLimit     RateLimit
	JWTSecretKey  string
	TokenDuration time.Duration
}

// optional config.ini, env variables always win
var iniFile *ini.File

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if iniFile != nil {
		if k, err := iniFile.Section("").GetKey(key); err == nil {
			return k.String()
		}
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if boolValue, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return boolValue
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if intValue, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if intValue, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return intValue
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if floatValue, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return floatValue
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "blogcms"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
	}
}

func LoadUpload() Upload {
	return Upload{
		Dir:        getEnv("UPLOAD_DIR", "./uploads"),
		PublicBase: getEnv("UPLOAD_PUBLIC_BASE", "/uploads"),
		Backend:    getEnv("STORAGE_BACKEND", "disk"),
		MaxSize:    getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
	}
}

func LoadRateLimit() RateLimit {
	return RateLimit{
		RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		Burst: getEnvAsInt("RATE_LIMIT_BURST", 30),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	if f, err := ini.Load("config.ini"); err == nil {
		iniFile = f
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		DB:            LoadDB(),
		MinIO:         LoadMinIO(),
		Upload:        LoadUpload(),
		RateLimit:     LoadRateLimit(),
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		TokenDuration: parseDuration(getEnv("TOKEN_DURATION", "24h"), 24*time.Hour),
	}
}
