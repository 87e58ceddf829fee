package repos

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"avtovybor/internal/config"
)

// OpenDB opens the process-wide connection pool, checks connectivity and
// makes sure the tables exist. The caller owns the handle and closes it on
// shutdown.
func OpenDB(driver, dsn string, maxOpen int) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == config.DriverSQLite {
		// one writer; also keeps ":memory:" on a single database
		db.SetMaxOpenConns(1)
	} else {
		if maxOpen <= 0 {
			maxOpen = 10
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := seedCars(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed cars: %w", err)
	}
	log.Printf("[db] connected driver=%s", driver)
	return db, nil
}

// Statements run one at a time: the MySQL driver rejects multi-statement
// strings unless multiStatements is enabled.
var schemas = map[string][]string{
	config.DriverSQLite: {
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email))`,
		`CREATE TABLE IF NOT EXISTS tradein_requests(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  car_brand TEXT NOT NULL,
  car_model TEXT NOT NULL,
  year INTEGER NOT NULL CHECK (year BETWEEN 1980 AND 2025),
  mileage INTEGER NOT NULL CHECK (mileage BETWEEN 0 AND 10000000),
  phone TEXT NOT NULL,
  user_email TEXT NOT NULL,
  estimated_price INTEGER NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE INDEX IF NOT EXISTS idx_tradein_user ON tradein_requests(user_email)`,
		`CREATE TABLE IF NOT EXISTS cars(
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  mileage INTEGER NOT NULL DEFAULT 0,
  price INTEGER NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT ''
)`,
	},
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS users(
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  email VARCHAR(254) NOT NULL UNIQUE,
  password_hash VARCHAR(100) NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
		`CREATE TABLE IF NOT EXISTS tradein_requests(
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  car_brand VARCHAR(100) NOT NULL,
  car_model VARCHAR(100) NOT NULL,
  year INT NOT NULL,
  mileage INT NOT NULL,
  phone VARCHAR(32) NOT NULL,
  user_email VARCHAR(254) NOT NULL,
  estimated_price BIGINT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  INDEX idx_tradein_user (user_email)
)`,
		`CREATE TABLE IF NOT EXISTS cars(
  id VARCHAR(64) PRIMARY KEY,
  brand VARCHAR(100) NOT NULL,
  model VARCHAR(100) NOT NULL,
  year INT NOT NULL,
  mileage INT NOT NULL DEFAULT 0,
  price BIGINT NOT NULL,
  image VARCHAR(255) NOT NULL DEFAULT '',
  description TEXT NOT NULL
)`,
	},
	config.DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS users(
  id BIGSERIAL PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ DEFAULT now()
)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email))`,
		`CREATE TABLE IF NOT EXISTS tradein_requests(
  id BIGSERIAL PRIMARY KEY,
  car_brand TEXT NOT NULL,
  car_model TEXT NOT NULL,
  year INTEGER NOT NULL CHECK (year BETWEEN 1980 AND 2025),
  mileage INTEGER NOT NULL CHECK (mileage BETWEEN 0 AND 10000000),
  phone TEXT NOT NULL,
  user_email TEXT NOT NULL,
  estimated_price BIGINT NOT NULL,
  created_at TIMESTAMPTZ DEFAULT now()
)`,
		`CREATE INDEX IF NOT EXISTS idx_tradein_user ON tradein_requests(user_email)`,
		`CREATE TABLE IF NOT EXISTS cars(
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  mileage INTEGER NOT NULL DEFAULT 0,
  price BIGINT NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT ''
)`,
	},
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	stmts, ok := schemas[db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// seedCars fills the catalog on first start only.
func seedCars(ctx context.Context, db *sqlx.DB) error {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM cars`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo cars")

	cars := []struct {
		ID, Brand, Model string
		Year, Mileage    int
		Price            int64
		Image, Desc      string
	}{
		{"volvo-xc90", "Volvo", "XC90", 2023, 12000, 8_900_000, "images/volvo-xc90.jpg", "Семиместный кроссовер, полный привод."},
		{"toyota-camry", "Toyota", "Camry", 2021, 48000, 3_200_000, "images/toyota-camry.jpg", "Бизнес-седан, один владелец."},
		{"kia-rio", "Kia", "Rio", 2019, 86000, 1_350_000, "images/kia-rio.jpg", "Городской седан, полная сервисная история."},
		{"bmw-x5", "BMW", "X5", 2022, 30000, 9_500_000, "images/bmw-x5.jpg", "Дизель, пакет M Sport."},
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	q := tx.Rebind(`INSERT INTO cars(id,brand,model,year,mileage,price,image,description) VALUES(?,?,?,?,?,?,?,?)`)
	for _, c := range cars {
		if _, err := tx.ExecContext(ctx, q, c.ID, c.Brand, c.Model, c.Year, c.Mileage, c.Price, c.Image, c.Desc); err != nil {
			return err
		}
	}
	return tx.Commit()
}
