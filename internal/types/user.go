package types

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        int64                       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string                      `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name      string                      `gorm:"not null;column:name" json:"name"`
	Address   *string                     `gorm:"column:address" json:"address,omitempty"`
	Roles     datatypes.JSONSlice[string] `gorm:"column:roles;type:jsonb" json:"roles"`
	CreatedAt time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "user"
}
