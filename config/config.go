package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config armazena todas as configurações da API da loja.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string
	LogFile     string // Vazio: apenas stdout

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration
	AutoMigrate bool // Executa as migrações goose na inicialização

	// Cache (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	// IPs/CIDRs (e.g., o cmd/web) cujos headers X-Forwarded-For são aceitos
	TrustedProxies []string

	// Conta administrativa criada pelo cmd/seed
	AdminNome     string
	AdminEmail    string
	AdminPassword string
}

// WebConfig armazena as configurações do frontend (cmd/web).
type WebConfig struct {
	Port          string
	LogLevel      string
	APIBaseURL    string
	SessionSecret string
	APITimeout    time.Duration
	// Proxies à frente do frontend; vazio usa o endereço da conexão
	TrustedProxies []string
}

// LoadConfig carrega as configurações da API a partir das variáveis de ambiente.
func LoadConfig() *Config {
	cfg := &Config{
		// 1. Geral
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),

		// 2. Banco de Dados (PostgreSQL)
		// mustGetEnv garante que a aplicação não inicie sem credenciais de DB
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		DBTimeout:   getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		AutoMigrate: getBoolEnv("AUTO_MIGRATE", false),

		// 3. Cache (Redis)
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		// 4. Segurança (JWT): 1 hora por padrão
		JWTSecretKey: mustGetEnv("JWT_SECRET_KEY"),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,
		TrustedProxies:       getListEnv("TRUSTED_PROXIES"),

		// 6. Seed do administrador
		AdminNome:     getEnv("ADMIN_NOME", "Administrador"),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}

	return cfg
}

// LoadWebConfig carrega as configurações do frontend.
func LoadWebConfig() *WebConfig {
	return &WebConfig{
		Port:          getEnv("WEB_PORT", "3000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		SessionSecret: mustGetEnv("SESSION_SECRET"),
		APITimeout:    getDurationEnv("API_TIMEOUT_SEC", 10) * time.Second,

		TrustedProxies: getListEnv("WEB_TRUSTED_PROXIES"),
	}
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
// A unidade é aplicada por quem chama.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// getListEnv lê uma lista separada por vírgulas, descartando itens vazios.
func getListEnv(key string) []string {
	var values []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			values = append(values, item)
		}
	}
	return values
}

// getBoolEnv aceita os formatos de strconv.ParseBool ("1", "true", "false"...).
func getBoolEnv(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é booleano. Usando padrão (%t).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
