package model

import (
	"time"
)

type Chunk struct {
	Id        int64     `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Chunk) TableName() string {
	return "chunks"
}
