package config

import "os"

type AppConfig struct {
	DebugMode      bool
	JudgeConfig    *JudgeConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	MinIOConfig    *MinIOConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		JudgeConfig:    NewJudgeConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		MinIOConfig:    NewMinIOConfig(),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
