package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret indica que JWT_SECRET não foi configurado. Não existe segredo padrão.
var ErrMissingJWTSecret = errors.New("config: JWT_SECRET é obrigatório")

// Config agrupa a configuração da aplicação (lida via Viper do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Docs      DocsConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// IsProduction informa se o ambiente é produção.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa (ex.: DATABASE_URL do Neon).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
}

// ConnectionString devolve o DSN a usar: DATABASE_URL se definido, senão o construído com DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve a connection string do PostgreSQL com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração dos tokens de sessão.
type JWTConfig struct {
	Secret            string
	ExpirationMinutes int
	Issuer            string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nível de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// RateLimitConfig limites de tentativas de login por IP.
type RateLimitConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// DocsConfig caminho do swagger.json servido em /docs. Vazio desativa.
type DocsConfig struct {
	SwaggerPath string
}

// Load lê a configuração das variáveis de ambiente (e opcionalmente de .env / config.env).
// As variáveis de ambiente têm prioridade. Falha se JWT_SECRET estiver vazio.
func Load() (*Config, error) {
	return fromViper(newViper())
}

// LoadDB lê apenas o necessário para ferramentas de banco (migrate, seed): não exige JWT_SECRET.
func LoadDB() (DBConfig, LogConfig) {
	cfg := build(newViper())
	return cfg.DB, cfg.Log
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := build(v)
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func build(v *viper.Viper) *Config {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "gestor-farma-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "gestor_farma"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			MinConns:    getInt(v, "DB_MIN_CONNS", 1),
		},
		JWT: JWTConfig{
			Secret:            getString(v, "JWT_SECRET", ""),
			ExpirationMinutes: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:            getString(v, "JWT_ISSUER", "gestor-farma"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getInt(v, "LOGIN_RATE_PER_MINUTE", 10),
			LoginBurst:     getInt(v, "LOGIN_RATE_BURST", 5),
		},
		Docs: DocsConfig{
			SwaggerPath: getString(v, "SWAGGER_PATH", "./docs/swagger.json"),
		},
	}
	if cfg.JWT.ExpirationMinutes <= 0 {
		cfg.JWT.ExpirationMinutes = 480
	}
	return cfg
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}
