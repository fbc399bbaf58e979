package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/synacor/argon2id"

	"pokerverse-server/pkg/db"
)

// SignupBonus is the chip balance every new user starts with
const SignupBonus = 1000

const userColumns = `
users.id,
users.username,
users.email,
users.password_hash,
users.chips,
users.created,
users.updated`

const pqDuplicateKeyErrorCode pq.ErrorCode = "23505"

// ErrInvalidUsernameOrPassword is an error for a failed login
var ErrInvalidUsernameOrPassword = errors.New("invalid username and/or password")

// ErrDuplicateKey happens if a user tries to register a taken username or email
var ErrDuplicateKey = errors.New("duplicate key constraint violation")

// ErrInvalidAmount happens on a non-positive deposit
var ErrInvalidAmount = UserError("amount must be positive")

// User is a record in the `users` table
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"-"`
	passwordHash string
	Chips        int64     `json:"chips"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getUserByRow(row db.Scanner) (*User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.passwordHash, &user.Chips, &user.Created, &user.Updated); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns a user based on the ID
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

	row := db.Instance().QueryRowContext(ctx, query, id)
	return getUserByRow(row)
}

// GetUserByUsername will return a user by the username
func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
SELECT ` + userColumns + `
FROM users
WHERE lower(username) = lower($1)`

	row := db.Instance().QueryRowContext(ctx, query, username)
	return getUserByRow(row)
}

// GetUserByUsernameAndPassword will return a user if the username and password are valid
func GetUserByUsernameAndPassword(ctx context.Context, username, password string) (*User, error) {
	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		if err == sql.ErrNoRows {
			// prevent timing attacks
			_ = argon2id.Compare("", "")
			return nil, ErrInvalidUsernameOrPassword
		}

		return nil, err
	}

	if err := argon2id.Compare(user.passwordHash, password); err != nil {
		return nil, ErrInvalidUsernameOrPassword
	}

	return user, nil
}

// CreateUser creates a new user with the signup bonus
func CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	hashPassword, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO users (username, email, password_hash, chips)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

	row := db.Instance().QueryRowContext(ctx, query, username, email, hashPassword, SignupBonus)
	user, err := getUserByRow(row)
	if err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == pqDuplicateKeyErrorCode {
			return nil, ErrDuplicateKey
		}

		return nil, err
	}

	return user, nil
}

// SetPassword will set a new password
func (u *User) SetPassword(password string) error {
	newHash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return err
	}

	const query = `
UPDATE users
SET password_hash = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	_, err = db.Instance().Exec(query, newHash, u.ID)
	return err
}

// LeaderboardEntry is one row of the leaderboard
type LeaderboardEntry struct {
	Username string `json:"username"`
	Chips    int64  `json:"chips"`
}

// Leaderboard returns the top users ordered by chip balance
func Leaderboard(ctx context.Context, limit int) ([]*LeaderboardEntry, error) {
	const query = `
SELECT username, chips
FROM users
ORDER BY chips DESC, username
LIMIT $1`

	rows, err := db.Instance().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.Chips); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
