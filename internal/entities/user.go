package entities

import "time"

// User is created once, on first successful completion of registration,
// and upserted by id afterwards.
type User struct {
	Id          int64 `gorm:"primaryKey"` // tg user id
	Username    string
	PhoneNumber string
	FirstName   string
	LastName    string
	GivenName   string
	City        string
	CreateDate  time.Time
}
