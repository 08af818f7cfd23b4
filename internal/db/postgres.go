package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pendulab/pendulum-backend/internal/logger"
	"github.com/pendulab/pendulum-backend/internal/types"
	"github.com/pendulab/pendulum-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "pendulum", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

// AutoMigrateAll migrates the three tables plus the order_result join table
// and then pins down the cascade rules explicitly:
//   - deleting a user deletes their orders (and those orders' link rows),
//   - deleting an order or a result deletes only its link rows,
//   - result rows themselves are never cascaded from the order side.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Result{},
		&types.Order{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		ddl  string
	}{
		{"fk_order_user_id", `
			ALTER TABLE "order"
			ADD CONSTRAINT "fk_order_user_id"
			FOREIGN KEY ("user_id")
			REFERENCES "user"("id")
			ON DELETE CASCADE`},
		{"fk_order_result_order_id", `
			ALTER TABLE "order_result"
			ADD CONSTRAINT "fk_order_result_order_id"
			FOREIGN KEY ("order_id")
			REFERENCES "order"("id")
			ON DELETE CASCADE`},
		{"fk_order_result_result_id", `
			ALTER TABLE "order_result"
			ADD CONSTRAINT "fk_order_result_result_id"
			FOREIGN KEY ("result_id")
			REFERENCES "result"("id")
			ON DELETE CASCADE`},
	}
	for _, c := range constraints {
		if err := s.db.Exec(fmt.Sprintf(`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %q`, constraintTable(c.name), c.name)).Error; err != nil {
			return fmt.Errorf("failed to drop %s: %w", c.name, err)
		}
		if err := s.db.Exec(c.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}
	return nil
}

func constraintTable(name string) string {
	if name == "fk_order_user_id" {
		return `"order"`
	}
	return `"order_result"`
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
