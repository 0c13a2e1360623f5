package mysql

import (
	"context"
	"time"

	driver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Connect opens a pool against the given database and pings it. Times are
// parsed into time.Time in UTC.
func Connect(ctx context.Context, host, user, pass, database string) (*sqlx.DB, error) {

	cfg := driver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.User = user
	cfg.Passwd = pass
	cfg.DBName = database
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sqlx.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open mysql connection")
	}

	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)

	err = db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping mysql")
	}

	return db, nil

}
