package database

import (
	migrate "github.com/rubenv/sql-migrate"
)

type sequenceRow struct {
	Name  string `gorm:"type:varchar(100);primaryKey"`
	Value int64  `gorm:"not null"`
}

func (sequenceRow) TableName() string {
	return "sequences"
}

// Migrate brings the schema up to date. Postgres deployments run the SQL
// migration files (which also own the certificate sequence); sqlite
// deployments auto-migrate from the models and carry a counters table in
// place of native sequences.
func (s *DB) Migrate(dir string, models ...any) error {
	log := s.log.Function("Migrate")

	if s.driver == "postgres" {
		sqlDB, err := s.SQL.DB()
		if err != nil {
			return log.Err("failed to get database from GORM", err)
		}

		migrations := &migrate.FileMigrationSource{Dir: dir}
		applied, err := migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
		if err != nil {
			return log.Err("failed to run migrations", err, "dir", dir)
		}

		log.Info("Migrations applied", "count", applied)
		return nil
	}

	models = append(models, &sequenceRow{})
	if err := s.SQL.AutoMigrate(models...); err != nil {
		return log.Err("failed to auto-migrate models", err)
	}

	log.Info("Schema auto-migrated", "models", len(models))
	return nil
}
