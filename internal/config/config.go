package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMySQL    = "mysql"
	StorageDriverRedis    = "redis"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	MySQL            MySQL            `mapstructure:",squash"`
	Redis            Redis            `mapstructure:",squash"`
	Storage          Storage          `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Metrics          Metrics          `mapstructure:",squash"`
	DashboardRefresh DashboardRefresh `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type MySQL struct {
	DSN      string `mapstructure:"-"`
	Host     string `mapstructure:"mysql_host"`
	Port     string `mapstructure:"mysql_port"`
	User     string `mapstructure:"mysql_user"`
	Password string `mapstructure:"mysql_password"`
	Name     string `mapstructure:"mysql_database"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
	Prefix   string `mapstructure:"redis_key_prefix"`
}

type Storage struct {
	Driver string `mapstructure:"storage_driver"`
}

type Auth struct {
	Secret        string        `mapstructure:"auth_secret"`
	TokenDuration time.Duration `mapstructure:"auth_token_duration"`
}

// Metrics concentra os parâmetros dos cálculos do painel
type Metrics struct {
	InactivityThresholdDays int `mapstructure:"metrics_inactivity_threshold_days"`
	TopCustomers            int `mapstructure:"metrics_top_customers"`
	RecentCustomers         int `mapstructure:"metrics_recent_customers"`
	DailySeriesDays         int `mapstructure:"metrics_daily_series_days"`
	WeeklySeriesWeeks       int `mapstructure:"metrics_weekly_series_weeks"`
	MonthlySeriesMonths     int `mapstructure:"metrics_monthly_series_months"`
}

type DashboardRefresh struct {
	CronSchedule string `mapstructure:"dashboard_refresh_cron"`
	Enabled      bool   `mapstructure:"dashboard_refresh_enabled"`
}

func SetDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173,http://localhost:8080")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/foodbrand?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("MYSQL_HOST", "localhost")
	viper.SetDefault("MYSQL_PORT", "3306")
	viper.SetDefault("MYSQL_USER", "root")
	viper.SetDefault("MYSQL_PASSWORD", "root")
	viper.SetDefault("MYSQL_DATABASE", "foodbrand")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "foodbrand")

	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_TOKEN_DURATION", "24h")

	viper.SetDefault("METRICS_INACTIVITY_THRESHOLD_DAYS", 14) // Clientes sem pedido há mais de 14 dias
	viper.SetDefault("METRICS_TOP_CUSTOMERS", 5)
	viper.SetDefault("METRICS_RECENT_CUSTOMERS", 3)
	viper.SetDefault("METRICS_DAILY_SERIES_DAYS", 7)
	viper.SetDefault("METRICS_WEEKLY_SERIES_WEEKS", 4)
	viper.SetDefault("METRICS_MONTHLY_SERIES_MONTHS", 6)

	viper.SetDefault("DASHBOARD_REFRESH_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("DASHBOARD_REFRESH_ENABLED", true)
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.complete(); err != nil {
		return nil, err
	}

	return config, nil
}

// complete monta os DSNs e valida os valores derivados
func (c *Config) complete() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMySQL, StorageDriverRedis:
	default:
		return fmt.Errorf("config: storage driver inválido: %q", c.Storage.Driver)
	}

	if c.Auth.Secret == "" {
		c.Auth.Secret = c.SecretKey
	}

	if c.Auth.TokenDuration <= 0 {
		c.Auth.TokenDuration = 24 * time.Hour
	}

	if c.Metrics.InactivityThresholdDays <= 0 {
		c.Metrics.InactivityThresholdDays = 14
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	c.MySQL.DSN = fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.MySQL.User,
		c.MySQL.Password,
		c.MySQL.Host,
		c.MySQL.Port,
		c.MySQL.Name,
	)

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
