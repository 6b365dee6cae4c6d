package config

// Text-insight strategies selectable via INSIGHT_STRATEGY
const (
	InsightStrategyKeyword    = "keyword"
	InsightStrategyOpenRouter = "openrouter"
)

// Config holds process-level settings read from the environment
type Config struct {
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	HTTPPort        string
	InsightStrategy string
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "engagepulse"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        getEnvOrDefault("PORT", "8080"),
		InsightStrategy: getEnvOrDefault("INSIGHT_STRATEGY", InsightStrategyKeyword),
	}
}
