package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Store provides all functions to execute db queries and transactions.
type Store interface {
	GetUser(ctx context.Context, prefix string) (User, error)
	CreateUser(ctx context.Context, arg CreateUserParams) (User, error)
}

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs individual statements against a DBTX.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// SQLStore provides all functions to execute SQL queries and transactions.
type SQLStore struct {
	*Queries
	db *sql.DB
}

// NewStore creates a new store.
func NewStore(db *sql.DB) Store {
	return &SQLStore{
		db:      db,
		Queries: New(db),
	}
}

// execTx executes a function within a database transaction.
func (store *SQLStore) execTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	q := New(tx)
	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// CreateUser inserts a new API user unless the email is already registered.
func (store *SQLStore) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	var user User
	err := store.execTx(ctx, func(q *Queries) error {
		_, err := q.GetUserByEmail(ctx, arg.EmailAddress)
		if err == nil {
			return ErrDuplicateEmail
		}
		if err != sql.ErrNoRows {
			return err
		}

		user, err = q.InsertUser(ctx, arg)
		if isUniqueViolation(err) {
			// a concurrent registration won the race between the pre-read
			// and the insert; report it the same way as the pre-read hit
			return ErrDuplicateEmail
		}
		return err
	})
	return user, err
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}

// ConnectDB opens a postgres connection and verifies it.
func ConnectDB(host string, port int, user, password, dbname string) (*sql.DB, error) {
	source := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
	conn, err := sql.Open("postgres", source)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}
	return conn, nil
}
