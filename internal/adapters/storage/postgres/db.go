package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-adoption-center/internal/adapters/storage/sqldb"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Códigos SQLSTATE que mapeamos a errores de storage.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Dialect: placeholders $n, SELECT ... FOR UPDATE y READ COMMITTED
// (los locks de fila alcanzan para serializar el workflow).
func Dialect() sqldb.Dialect {
	return sqldb.Dialect{
		Name:                  "postgres",
		Numbered:              true,
		ForUpdate:             " FOR UPDATE",
		IsUniqueViolation:     hasCode(codeUniqueViolation),
		IsForeignKeyViolation: hasCode(codeForeignKeyViolation),
		TxOptions:             &sql.TxOptions{Isolation: sql.LevelReadCommitted},
	}
}

// NewStore abre el store compartido sobre db.
func NewStore(db *sql.DB) *sqldb.DB {
	return sqldb.New(db, Dialect())
}

func hasCode(code string) func(error) bool {
	return func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == code
	}
}
