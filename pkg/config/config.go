package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
	Notify  NotifyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Lang     string // es, en, vi
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig API REST del almacén.
type BackendConfig struct {
	BaseURL        string // sin /api; ej. http://localhost:8080
	TimeoutSeconds int
}

// Timeout duración máxima de cada petición al backend.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig persistencia del ámbito "recordarme".
// Path vacío = solo memoria (el ámbito durable no sobrevive al reinicio).
type SessionConfig struct {
	StorePath string
	StoreKey  string // vacío = sin cifrado
}

// NotifyConfig sondeo de notificaciones.
type NotifyConfig struct {
	PollIntervalSeconds int
	Stream              bool // además del sondeo, escuchar /history-logs/stream
}

// PollInterval intervalo entre consultas del contador de no leídas.
func (c NotifyConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-console"),
			Lang:     getString(v, "APP_LANG", "es"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 3000),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:8080"), "/"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 10),
		},
		Session: SessionConfig{
			StorePath: getString(v, "SESSION_STORE_PATH", ""),
			StoreKey:  getString(v, "SESSION_STORE_KEY", ""),
		},
		Notify: NotifyConfig{
			PollIntervalSeconds: getInt(v, "NOTIFY_POLL_INTERVAL_SECONDS", 5),
			Stream:              getBool(v, "NOTIFY_STREAM", false),
		},
	}

	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("config: BACKEND_BASE_URL vacío")
	}
	if cfg.Backend.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("config: BACKEND_TIMEOUT_SECONDS debe ser positivo (%d)", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Notify.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("config: NOTIFY_POLL_INTERVAL_SECONDS debe ser positivo (%d)", cfg.Notify.PollIntervalSeconds)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
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
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
