package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"onlinestore/config"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/web"
	"onlinestore/internal/web/apiclient"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadWebConfig()
	appLog := logger.NewLogger(cfg.LogLevel)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	store := web.NewCookieStore(cfg.SessionSecret, false)
	router := web.NewRouter(web.NewHandler(api, store, appLog), appLog)
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		appLog.Fatal("WEB_TRUSTED_PROXIES inválido.", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("Frontend ouvindo na porta", map[string]interface{}{"port": cfg.Port, "api": cfg.APIBaseURL})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Servidor do frontend falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do frontend forçado.", err)
	}
	appLog.Info("Frontend encerrado.", nil)
}
