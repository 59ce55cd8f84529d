package main

import (
	"context"
	stderrors "errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"onlinestore/config"
	"onlinestore/internal/domain"
	apperror "onlinestore/internal/errors"
	"onlinestore/internal/pkg/database"
	"onlinestore/internal/pkg/logger"
	"onlinestore/internal/pkg/token"
	"onlinestore/internal/repository/clienterepo"
	"onlinestore/internal/service/clienteservice"
)

// seed cria a conta administrativa definida por ADMIN_EMAIL / ADMIN_PASSWORD.
// Rodar de novo com o mesmo e-mail não altera a conta existente.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		appLog.Fatal("ADMIN_EMAIL e ADMIN_PASSWORD são obrigatórios para o seed.", nil)
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	repo := clienterepo.NewClienteRepository(db, cfg.DBTimeout, appLog)
	svc := clienteservice.NewService(repo, token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry), appLog)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := svc.RegisterWithRole(ctx, domain.ClienteRegistration{
		Nome:     cfg.AdminNome,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, domain.RoleAdmin)

	var conflict *apperror.ConflictError
	switch {
	case stderrors.As(err, &conflict):
		appLog.Warn("Administrador já existe; nada a fazer.", map[string]interface{}{"email": cfg.AdminEmail})
	case err != nil:
		appLog.Fatal("Falha ao criar o administrador.", err)
	default:
		appLog.Info("Administrador criado.", map[string]interface{}{"id": admin.ID, "email": admin.Email})
	}
}
