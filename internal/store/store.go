package store

import (
	"fmt"
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

// Store is the handle to the local record store. It is opened once at startup,
// injected into every service, and closed on shutdown.
type Store struct {
	db    *gorm.DB
	locks routeLocks
}

// Open connects to the configured backend and applies schema migrations.
// DB_DRIVER=sqlite (default) keeps everything in a local embedded file for
// offline use; DB_DRIVER=postgres targets a server the way a hosted
// deployment would.
func Open() (*Store, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	driver := getEnv("DB_DRIVER", "sqlite")
	switch driver {
	case "sqlite":
		return OpenPath(getEnv("DB_PATH", "./dispatch.db"))
	case "postgres":
		return openPostgres()
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

// OpenPath opens an embedded sqlite store at the given path and migrates it.
func OpenPath(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: glog.Default.LogMode(glog.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return migrateAndWrap(db)
}

func openPostgres() (*Store, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "password")
	dbname := getEnv("DB_NAME", "dispatch")
	sslmode := getEnv("DB_SSLMODE", "disable")
	timezone := getEnv("DB_TIMEZONE", "UTC")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	return migrateAndWrap(db)
}

func migrateAndWrap(db *gorm.DB) (*Store, error) {
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying gorm handle for transactional service operations.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn atomically against the store.
func (s *Store) Transaction(fn func(tx *gorm.DB) error) error {
	return s.db.Transaction(fn)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Add inserts a record and assigns its id.
func Add[T any](s *Store, rec *T) error {
	return s.db.Create(rec).Error
}

// Update rewrites the full record (upsert by id).
func Update[T any](s *Store, rec *T) error {
	return s.db.Save(rec).Error
}

// GetAll returns every record in the collection for T.
func GetAll[T any](s *Store) ([]T, error) {
	var recs []T
	if err := s.db.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Get fetches one record by id. Returns gorm.ErrRecordNotFound when missing;
// callers surface that as a NotFound error, never swallow it.
func Get[T any](s *Store, id uint) (*T, error) {
	var rec T
	if err := s.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// getEnv reads an environment variable or returns the provided default.
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
