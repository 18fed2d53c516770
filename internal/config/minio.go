package config

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

func NewMinIOConfig() *MinIOConfig {
	return &MinIOConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		SecretKey: getEnv("MINIO_SECRET_KEY", ""),
		UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		Bucket:    getEnv("MINIO_BUCKET", "submissions"),
	}
}
