package mysql

import (
	"context"
	"time"

	"github.com/vfg2006/foodbrand-dashboard-api/internal/config"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewConnection abre o pool do MySQL via gorm e valida a conexão
func NewConnection(ctx context.Context, cfg config.MySQL) (*gorm.DB, error) {
	db, err := gorm.Open(gormmysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
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
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
