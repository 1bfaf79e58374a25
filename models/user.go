package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 代表外部身份儲存中的使用者
// 此資料表由外部系統佈建，本服務只讀取，不寫回
type User struct {
	gorm.Model

	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username      string    `gorm:"type:varchar(255);not null;unique;<-:create"`
	Email         string    `gorm:"type:varchar(255);not null;unique;<-:create"`
	Password      string    `gorm:"type:varchar(255);not null"`
	FirstName     string    `gorm:"type:varchar(255);not null"`
	LastName      string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(64);not null"`
	Address       string    `gorm:"type:text;not null"`
	Birthday      time.Time `gorm:"type:date;not null"`
	Enabled       bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`

	// 外鍵關聯
	Attributes []UserAttribute
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
