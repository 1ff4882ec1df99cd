package domain

import "time"

// User is an application user identified by their Telegram account.
type User struct {
	ID          int64
	TelegramID  int64
	FirstName   string
	LastName    *string
	Username    *string
	PhotoURL    *string
	AuthDate    time.Time
	CreatedAt   time.Time
	LastLoginAt time.Time
}
