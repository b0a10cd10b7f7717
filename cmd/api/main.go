package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/danny20232023/hris-sub003/internal/config"
	appHTTP "github.com/danny20232023/hris-sub003/internal/handler/http"
	"github.com/danny20232023/hris-sub003/internal/pkg/database"
	"github.com/danny20232023/hris-sub003/internal/pkg/jwt"
	"github.com/danny20232023/hris-sub003/internal/repository/postgresql"
	authService "github.com/danny20232023/hris-sub003/internal/service/auth"
	overtimeService "github.com/danny20232023/hris-sub003/internal/service/overtime"
	"github.com/danny20232023/hris-sub003/migrations"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func runMigrations(databaseURL string) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	dsn := cfg.DatabaseURL()
	if err := runMigrations(dsn); err != nil {
		log.Fatal("Error migrating database: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	overtimeRepo := postgresql.NewOvertimeRepository(db)
	rawLogRepo := postgresql.NewRawLogRepository(db)
	sysUserRepo := postgresql.NewSysUserRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(sysUserRepo, jwtService)
	overtimeSvc := overtimeService.NewOvertimeService(db, overtimeRepo, rawLogRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, overtimeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
