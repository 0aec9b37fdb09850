package infra

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DatabaseOptions tunes the connection pool.
type DatabaseOptions struct {
	MaxOpenConns int
	MaxIdleConns int
}

// NewDatabase opens a pgx-backed *sql.DB, hands it to GORM and applies the
// idempotent schema patches. TranslateError is enabled so unique violations
// surface as gorm.ErrDuplicatedKey.
func NewDatabase(dsn string, opts DatabaseOptions) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	db, err := OpenGorm(sqlDB)
	if err != nil {
		return nil, err
	}

	if err := applySchemaPatches(db); err != nil {
		return nil, fmt.Errorf("schema patches: %w", err)
	}
	return db, nil
}

// OpenGorm wraps an existing connection. Tests use it with go-sqlmock.
func OpenGorm(sqlDB *sql.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
}

// applySchemaPatches runs idempotent DDL. The schema is owned by these
// statements rather than AutoMigrate so the NUMERIC precision and the unique
// constraint name stay stable.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`CREATE TABLE IF NOT EXISTS tickets (
		    id                        BIGSERIAL PRIMARY KEY,
		    numero_ticket             TEXT          NOT NULL,
		    equipo                    TEXT          NOT NULL,
		    fecha_entrada             TIMESTAMPTZ   NOT NULL,
		    fecha_inicio_servicio     TIMESTAMPTZ   NOT NULL,
		    fecha_fin_servicio        TIMESTAMPTZ,
		    descripcion               TEXT          NOT NULL,
		    costo_repuestos           NUMERIC(12,2) NOT NULL DEFAULT 0,
		    costo_mano_obra           NUMERIC(12,2) NOT NULL DEFAULT 0,
		    costos_externos_estimados NUMERIC(12,2) NOT NULL DEFAULT 0,
		    created_at                TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
		    updated_at                TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		)`,
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'uni_tickets_numero_ticket') THEN
		    ALTER TABLE tickets ADD CONSTRAINT uni_tickets_numero_ticket UNIQUE (numero_ticket);
		  END IF;
		END $$`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_equipo ON tickets (equipo)`,
		`CREATE INDEX IF NOT EXISTS idx_tickets_created_at ON tickets (created_at DESC)`,
	}

	for _, stmt := range patches {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("patch %q: %w", stmt[:min(len(stmt), 60)], err)
		}
	}
	return nil
}

// RunMigrations applies the schema patches; used by integration tests.
func RunMigrations(db *gorm.DB) error {
	return applySchemaPatches(db)
}
