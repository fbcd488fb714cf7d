package kvstore

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/drashti611/gowear-frontend/internal/config"
)

type FactoryResult struct {
	Driver string
	Store  Store
	DB     *gorm.DB // set for SQL drivers
}

// FromConfig builds the configured store. rdb is required for the redis driver.
func FromConfig(cfg config.Config, rdb *redis.Client) (FactoryResult, error) {
	switch cfg.KVDriver {
	case "", "memory":
		return FactoryResult{Driver: "memory", Store: NewMemory()}, nil

	case "redis":
		if rdb == nil {
			return FactoryResult{}, fmt.Errorf("kvstore: redis driver needs a client")
		}
		return FactoryResult{Driver: "redis", Store: NewRedis(rdb, cfg.KVTTL)}, nil

	case "mysql", "postgres":
		db, err := OpenDB(cfg.KVDriver, cfg.DBDSN)
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: cfg.KVDriver, Store: NewSQL(db), DB: db}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown KV_DRIVER: %s", cfg.KVDriver)
	}
}

// OpenDB opens a gorm connection for the given SQL driver name.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("kvstore: DB_DSN is required for %s", driver)
	}
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("kvstore: unsupported sql driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("kvstore: connect %s: %w", driver, err)
	}
	return db, nil
}
