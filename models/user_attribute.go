package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserAttribute 代表使用者的擴充屬性
// 每個 key 對應單一字串值，key 在同一使用者下唯一
type UserAttribute struct {
	gorm.Model

	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_attribute_user_id_key,where:deleted_at IS NULL;not null;<-:create"`
	Key    string    `gorm:"column:attribute_key;type:varchar(255);uniqueIndex:idx_user_attribute_user_id_key,where:deleted_at IS NULL;not null;<-:create"`
	Value  string    `gorm:"column:attribute_value;type:text;not null"`

	// 外鍵關聯
	User *User `gorm:"foreignKey:UserID"`
}

func (a *UserAttribute) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
