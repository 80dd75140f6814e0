// create_superadmin crea el usuario SUPERADMIN o, si el email ya existe, restablece su password.
//
// Uso: go run ./cmd/create_superadmin -email admin@james.pe -password secreto -name "Super Admin"
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/menu-admin-api/internal/domain/entity"
	"github.com/jhoicas/menu-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/menu-admin-api/pkg/config"
	"github.com/jhoicas/menu-admin-api/pkg/logger"
)

func main() {
	var (
		email    = flag.String("email", os.Getenv("SUPERADMIN_EMAIL"), "email del superadmin")
		password = flag.String("password", os.Getenv("SUPERADMIN_PASSWORD"), "password (mínimo 8 caracteres)")
		name     = flag.String("name", "Super Admin", "nombre visible")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("create_superadmin")

	addr := strings.ToLower(strings.TrimSpace(*email))
	if addr == "" || len(*password) < 8 {
		log.Fatal().Msg("se requieren -email y -password (mínimo 8 caracteres)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	users := postgres.NewUserRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}
	now := time.Now()

	existing, err := users.GetByEmail(ctx, addr)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if existing != nil {
		if existing.Role != entity.RoleSuperAdmin {
			log.Fatal().Str("email", addr).Str("role", existing.Role).Msg("el email pertenece a un usuario de tenant")
		}
		existing.PasswordHash = string(hash)
		existing.IsActive = true
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Msg("actualizar superadmin")
		}
		log.Info().Str("email", addr).Str("user_id", existing.ID).Msg("password de superadmin restablecido")
		return
	}

	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        addr,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(*name),
		Role:         entity.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("crear superadmin")
	}
	log.Info().Str("email", addr).Str("user_id", u.ID).Msg("superadmin creado")
}
