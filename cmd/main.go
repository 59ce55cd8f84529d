package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"onlinestore/config"
	"onlinestore/internal/pkg/cache"
	"onlinestore/internal/pkg/database"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/middleware"
	"onlinestore/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"onlinestore/internal/api/cliente"
	"onlinestore/internal/api/pedido"
	"onlinestore/internal/api/produto"
	"onlinestore/internal/api/router"
	"onlinestore/internal/repository/clienterepo"
	"onlinestore/internal/repository/pedidorepo"
	"onlinestore/internal/repository/produtorepo"
	"onlinestore/internal/service/clienteservice"
	"onlinestore/internal/service/pedidoservice"
	"onlinestore/internal/service/produtoservice"
)

func main() {
	log.Println("⚡ Inicializando API da loja...")

	// 0. Variáveis de ambiente (.env é opcional; em Docker vêm do ambiente)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()

	appLog := logger.NewFileLogger(cfg.LogLevel, cfg.LogFile)
	if s, ok := appLog.(interface{ Sync() error }); ok {
		defer s.Sync()
	}
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	// 1. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			appLog.Fatal("Falha ao aplicar migrações.", err)
		}
		appLog.Info("Migrações aplicadas.", nil)
	}

	// 2. Cache (Redis). Sem Redis, cache e rate limit ficam em memória.
	var cacheClient cache.Client
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			appLog.Warn("Redis indisponível no início; o cache será ignorado até reconectar.", map[string]interface{}{
				"addr":  cfg.RedisAddr,
				"error": err.Error(),
			})
		} else {
			appLog.Info("Conexão Redis estabelecida.", nil)
		}
		defer redisClient.Close()
		cacheClient = redisClient
	} else {
		appLog.Warn("REDIS_ADDR vazio: usando cache em memória.", nil)
		cacheClient = cache.NewMemoryClient()
	}

	// 3. Injeção de dependências: Repository -> Service -> Handler
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	clienteRepo := clienterepo.NewClienteRepository(db, cfg.DBTimeout, appLog)
	produtoRepo := produtorepo.NewProdutoRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	pedidoRepo := pedidorepo.NewPedidoRepository(db, cfg.DBTimeout, appLog)

	clienteSvc := clienteservice.NewService(clienteRepo, tokenSvc, appLog)
	produtoSvc := produtoservice.NewService(produtoRepo, appLog)
	pedidoSvc := pedidoservice.NewService(pedidoRepo, appLog)

	proxies, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		appLog.Fatal("TRUSTED_PROXIES inválido.", err)
	}

	handler := router.NewRouter(router.Dependencies{
		ClienteHandler:       cliente.NewHandler(clienteSvc, appLog),
		ProdutoHandler:       produto.NewHandler(produtoSvc, appLog),
		PedidoHandler:        pedido.NewHandler(pedidoSvc, appLog),
		TokenService:         tokenSvc,
		Cache:                cacheClient,
		Logger:               appLog,
		RateLimitMaxRequests: cfg.RateLimitMaxRequests,
		RateLimitPeriod:      cfg.RateLimitPeriod,
		TrustedProxies:       proxies,
	})
	appLog.Debug("Dependências inicializadas.", nil)

	// 4. Servidor
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("API ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
