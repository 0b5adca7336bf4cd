package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr        string
	MongoURL        string
	MongoDatabase   string
	MongoCollection string
	RedisAddr       string
	InstanceID      string
	ServiceName     string
	MetricsEnabled  bool
	TracingEnabled  bool
	JaegerURL       string
	ObsHTTPAddr     string

	// TreatMissingIDAsSuccess keeps the historical contract of reporting
	// success for updates and deletes of absent ids.
	TreatMissingIDAsSuccess bool
}

func Load() *Config {
	return &Config{
		HTTPAddr:                fixPort(getEnv("HTTP_ADDR", ":5000")),
		MongoURL:                mustEnv("MONGODB_URL"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "pinboard"),
		MongoCollection:         getEnv("MONGO_COLLECTION", "messages"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		InstanceID:              getEnv("INSTANCE_ID", getEnv("HOSTNAME", "")),
		ServiceName:             getEnv("SERVICE_NAME", "pinboard"),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
		TracingEnabled:          getEnvBool("TRACING_ENABLED", false),
		JaegerURL:               getEnv("JAEGER_URL", "http://localhost:14268/api/traces"),
		ObsHTTPAddr:             fixPort(getEnv("OBS_HTTP_ADDR", ":5090")),
		TreatMissingIDAsSuccess: getEnvBool("TREAT_MISSING_ID_AS_SUCCESS", true),
	}
}

func fixPort(port string) string {
	if port != "" && !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true"
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing required env: " + k)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
