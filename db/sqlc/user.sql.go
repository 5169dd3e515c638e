package db

import (
	"context"
	"errors"
)

// User is one row of the registrar table. Timestamps are stored as formatted
// strings, layout "2006-01-02 15:04:05".
type User struct {
	EmailAddress string
	Prefix       string
	Token        string
	GeneratedAt  string
	ExpiredAt    string
	Admin        bool
}

// ErrDuplicateEmail is returned when registering an email that already holds
// an API key.
var ErrDuplicateEmail = errors.New("email address is already registered")

const getUser = `
SELECT email_address, prefix, token, generated_at, expired_at, admin
FROM registrar
WHERE prefix = $1
LIMIT 1
`

// GetUser looks a user up by API-key prefix.
func (q *Queries) GetUser(ctx context.Context, prefix string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUser, prefix)
	var u User
	err := row.Scan(&u.EmailAddress, &u.Prefix, &u.Token, &u.GeneratedAt, &u.ExpiredAt, &u.Admin)
	return u, err
}

const getUserByEmail = `
SELECT email_address, prefix, token, generated_at, expired_at, admin
FROM registrar
WHERE email_address = $1
LIMIT 1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByEmail, email)
	var u User
	err := row.Scan(&u.EmailAddress, &u.Prefix, &u.Token, &u.GeneratedAt, &u.ExpiredAt, &u.Admin)
	return u, err
}

type CreateUserParams struct {
	EmailAddress string
	Prefix       string
	Token        string
	GeneratedAt  string
	ExpiredAt    string
	Admin        bool
}

const insertUser = `
INSERT INTO registrar (email_address, prefix, token, generated_at, expired_at, admin)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING email_address, prefix, token, generated_at, expired_at, admin
`

func (q *Queries) InsertUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, insertUser,
		arg.EmailAddress,
		arg.Prefix,
		arg.Token,
		arg.GeneratedAt,
		arg.ExpiredAt,
		arg.Admin,
	)
	var u User
	err := row.Scan(&u.EmailAddress, &u.Prefix, &u.Token, &u.GeneratedAt, &u.ExpiredAt, &u.Admin)
	return u, err
}
