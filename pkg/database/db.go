package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options describes the connection parameters for the persistent store.
type Options struct {
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Connect opens a Postgres-backed gorm handle. The handle is owned by the
// caller and injected into every component; there is no package-level state.
func Connect(opts Options) (*gorm.DB, error) {
	dsn := opts.URL
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			opts.Host, opts.User, opts.Password, opts.Name, opts.Port,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
