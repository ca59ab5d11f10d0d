package infra

import (
	"fmt"

	"github.com/cuevasfm/pan-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (extensions, partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations applies the full schema. Shared with the integration tests,
// which call it against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	// gen_random_uuid() lives in pgcrypto on Postgres < 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return fmt.Errorf("pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Unidad{},
		&model.UnidadConversion{},
		&model.Insumo{},
		&model.Producto{},
		&model.RecetaItem{},
		&model.Cliente{},
		&model.FechaProduccion{},
		&model.Pedido{},
		&model.PedidoDetalle{},
		&model.Notificacion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	return applySchemaPatches(db)
}

// applySchemaPatches covers DDL that AutoMigrate cannot express.
// Every statement is idempotent so re-running on a patched schema is a no-op.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// partial index for the notification retry cron query
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_notificaciones_pending_retry') THEN
		    CREATE INDEX idx_notificaciones_pending_retry
		        ON notificaciones (next_retry_at)
		        WHERE estado = 'pendiente' AND next_retry_at IS NOT NULL;
		  END IF;
		END $$`,
		// pedidos listings are almost always scoped by fecha de produccion
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_fecha_produccion') THEN
		    CREATE INDEX idx_pedidos_fecha_produccion
		        ON pedidos (fecha_produccion_id);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
