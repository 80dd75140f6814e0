package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/menu-admin-api/internal/application/superadmin"
	"github.com/jhoicas/menu-admin-api/internal/application/usecase"
	"github.com/jhoicas/menu-admin-api/internal/domain/repository"
)

// Ensure TxRunner implements usecase.CatalogTxRunner and superadmin.TenantTxRunner.
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)
var _ superadmin.TenantTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCatalog inicia una transacción con repos del catálogo (reordenamientos, borrado de subtags).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	categories repository.CategoryRepository,
	dishes repository.DishRepository,
	subtags repository.SubtagRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewCategoryRepository(tx), NewDishRepository(tx), NewSubtagRepository(tx))
	})
}

// RunTenant inicia una transacción con repos de tenants y usuarios (alta de tenant + ADMIN).
func (r *TxRunner) RunTenant(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	users repository.UserRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTenantRepository(tx), NewUserRepository(tx))
	})
}

// run hace Commit si fn no falla; en cualquier otro caso Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
