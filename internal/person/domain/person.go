package domain

import "time"

// Person is a family member shown on the board. Identity is the opaque id;
// names are not unique.
type Person struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeviceToken is a registered FCM push token. PersonID may be nil when a
// device registered before picking a person from the share link.
type DeviceToken struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PersonID  *string   `json:"personId,omitempty" gorm:"index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	Platform  string    `json:"platform"` // "web" or "mobile-web"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
