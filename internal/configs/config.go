package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultInmovillaAPIURL = "https://api.inmovilla.com/v1"
	defaultLanguage        = 1
)

type RESTconfig struct {
	PORT string
	// BasePath - префикс, под которым сервис опубликован (например, "/api/inmovilla").
	BasePath             string
	AllowedOrigins       []string
	ExposeUpstreamErrors bool
}

// InmovillaConfig - учетные данные агентства для API Inmovilla.
type InmovillaConfig struct {
	Agency   string
	Password string
	Language int
	APIURL   string
	Domain   string
	Timeout  time.Duration
}

type StdoutLogConfig struct {
	Level  string
	Format string // color | text | json
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Inmovilla    InmovillaConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env файл необязателен: переменные, уже заданные в окружении, он не перезаписывает.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment variables.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "inmovilla-gateway")

	cfg.Rest.PORT = getEnvAsString("PORT", "8080")
	cfg.Rest.BasePath = normalizeBasePath(os.Getenv("BASE_PATH"))
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.Rest.ExposeUpstreamErrors = getEnvAsBool("EXPOSE_UPSTREAM_ERRORS", false)

	cfg.Inmovilla.Agency = os.Getenv("INMOVILLA_AGENCY")
	if cfg.Inmovilla.Agency == "" {
		return nil, fmt.Errorf("INMOVILLA_AGENCY environment variable is required")
	}
	cfg.Inmovilla.Password = os.Getenv("INMOVILLA_PASSWORD")
	if cfg.Inmovilla.Password == "" {
		return nil, fmt.Errorf("INMOVILLA_PASSWORD environment variable is required")
	}
	cfg.Inmovilla.Language = getEnvAsInt("INMOVILLA_LANGUAGE", defaultLanguage)
	cfg.Inmovilla.APIURL = getEnvAsString("INMOVILLA_API_URL", defaultInmovillaAPIURL)
	if cfg.Inmovilla.APIURL == "" {
		cfg.Inmovilla.APIURL = defaultInmovillaAPIURL
	}
	cfg.Inmovilla.Domain = os.Getenv("INMOVILLA_DOMAIN")
	cfg.Inmovilla.Timeout = getEnvAsDuration("INMOVILLA_TIMEOUT", 15*time.Second)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")
	cfg.StdoutLogger.Format = getEnvAsString("STDOUT_LOG_FORMAT", "color")

	return cfg, nil
}

// normalizeBasePath приводит префикс к виду "/a/b" без завершающего слеша; "/" и "" - пустой префикс.
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists || valStr == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList читает список значений через запятую.
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
