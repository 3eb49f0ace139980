package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PlanLimitsConfig holds the usage caps for a single plan.
// A value of -1 means unlimited; 0 means no quota at all.
type PlanLimitsConfig struct {
	SongsPerMonth         int    `mapstructure:"songs_per_month"`
	PracticeMinutesPerDay int    `mapstructure:"practice_minutes_per_day"`
	AudioQuality          string `mapstructure:"audio_quality"`
	AIGenerationsPerMonth int    `mapstructure:"ai_generations_per_month"`
}

// PlanConfig describes one entry of the plan catalog. The catalog is data,
// not behavior: it is loaded from configuration and injected into the
// entitlement guard so tests can supply synthetic plans.
type PlanConfig struct {
	Name     string           `mapstructure:"name"`
	Price    int64            `mapstructure:"price"`
	Currency string           `mapstructure:"currency"`
	Duration string           `mapstructure:"duration"`
	Features []string         `mapstructure:"features"`
	Limits   PlanLimitsConfig `mapstructure:"limits"`
}

type SubscriptionConfig struct {
	Plans map[string]PlanConfig `mapstructure:"plans"`
}

type PaymentConfig struct {
	RazorpayKeyID     string `mapstructure:"razorpay_key_id"`
	RazorpayKeySecret string `mapstructure:"razorpay_key_secret"`
}

type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	LyricsModel    string `mapstructure:"lyrics_model"`
	MusicModel     string `mapstructure:"music_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RendererConfig struct {
	ProjectDir string `mapstructure:"project_dir"`
	OutputDir  string `mapstructure:"output_dir"`
	PublicPath string `mapstructure:"public_path"`
	BinaryPath string `mapstructure:"binary_path"`
}
