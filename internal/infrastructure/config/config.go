package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"melodia/internal/domain/subscription"
	sharedConfig "melodia/internal/shared/config"
	"melodia/internal/shared/constants"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Payment      sharedConfig.PaymentConfig      `mapstructure:"payment"`
	LLM          sharedConfig.LLMConfig          `mapstructure:"llm"`
	Renderer     sharedConfig.RendererConfig     `mapstructure:"renderer"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("MELODIA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// BuildPlanCatalog converts the configured plan table into the domain
// catalog consumed by the entitlement guard.
func (c *Config) BuildPlanCatalog() (*subscription.Catalog, error) {
	plans := make([]subscription.Plan, 0, len(c.Subscription.Plans))
	for planID, pc := range c.Subscription.Plans {
		plans = append(plans, subscription.Plan{
			ID:       planID,
			Name:     pc.Name,
			Price:    pc.Price,
			Currency: pc.Currency,
			Duration: subscription.PlanDuration(pc.Duration),
			Features: pc.Features,
			Limits: subscription.PlanLimits{
				SongsPerMonth:         pc.Limits.SongsPerMonth,
				PracticeMinutesPerDay: pc.Limits.PracticeMinutesPerDay,
				AudioQuality:          pc.Limits.AudioQuality,
				AIGenerationsPerMonth: pc.Limits.AIGenerationsPerMonth,
			},
		})
	}

	return subscription.NewCatalog(plans)
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.base_url", "http://localhost:8080")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "melodia_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	viper.SetDefault("auth.password.bcrypt_cost", 12)
	viper.SetDefault("auth.jwt.access_exp_minutes", 60*24*7)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	// LLM defaults
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.lyrics_model", "gpt-4o-mini")
	viper.SetDefault("llm.music_model", "gpt-4o-mini")
	viper.SetDefault("llm.timeout_seconds", 60)

	// Renderer defaults
	viper.SetDefault("renderer.project_dir", "./remotion")
	viper.SetDefault("renderer.output_dir", "./public/videos")
	viper.SetDefault("renderer.public_path", "/videos")

	// Plan catalog defaults mirror the launch pricing: a perpetual free
	// tier plus two paid tiers. -1 means unlimited; 0 would mean no quota.
	viper.SetDefault("subscription.plans."+constants.PlanFree+".name", "Free")
	viper.SetDefault("subscription.plans."+constants.PlanFree+".price", 0)
	viper.SetDefault("subscription.plans."+constants.PlanFree+".currency", "INR")
	viper.SetDefault("subscription.plans."+constants.PlanFree+".duration", "lifetime")
	viper.SetDefault("subscription.plans."+constants.PlanFree+".limits.songs_per_month", 5)
	viper.SetDefault("subscription.plans."+constants.PlanFree+".limits.practice_minutes_per_day", 15)
	viper.SetDefault("subscription.plans."+constants.PlanFree+".limits.audio_quality", "standard")
	viper.SetDefault("subscription.plans."+constants.PlanFree+".limits.ai_generations_per_month", 3)

	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".name", "Monthly Pro")
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".price", 49900)
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".currency", "INR")
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".duration", "monthly")
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".limits.songs_per_month", -1)
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".limits.practice_minutes_per_day", -1)
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".limits.audio_quality", "hd")
	viper.SetDefault("subscription.plans."+constants.PlanMonthly+".limits.ai_generations_per_month", -1)

	viper.SetDefault("subscription.plans."+constants.PlanYearly+".name", "Yearly Pro")
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".price", 499900)
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".currency", "INR")
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".duration", "yearly")
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".limits.songs_per_month", -1)
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".limits.practice_minutes_per_day", -1)
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".limits.audio_quality", "ultra")
	viper.SetDefault("subscription.plans."+constants.PlanYearly+".limits.ai_generations_per_month", -1)
}
