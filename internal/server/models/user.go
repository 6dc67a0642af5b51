package models

import "time"

// User is a registered account. Password holds whatever the configured
// password scheme stores: the plaintext password, a bcrypt hash or an
// argon2id PHC string.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
}
