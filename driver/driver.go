package driver

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
)

// ConnectDB opens the MySQL pool from DB_DSN, or composes the DSN from the
// DB_* variables when unset.
func ConnectDB() *sql.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?multiStatements=true",
			envOr("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "127.0.0.1"),
			envOr("DB_PORT", "3306"),
			envOr("DB_NAME", "study_planner"),
		)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	return db
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
