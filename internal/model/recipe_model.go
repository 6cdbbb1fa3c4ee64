package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Recipe struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:text;not null;index"`
	Description  string         `gorm:"type:text"`
	Cuisine      string         `gorm:"type:varchar(100);index"`
	Servings     int            `gorm:"default:0"`
	TotalMinutes int            `gorm:"default:0"`
	Ingredients  datatypes.JSON `gorm:"type:jsonb"`
	Steps        datatypes.JSON `gorm:"type:jsonb"`
	Nutrition    datatypes.JSON `gorm:"type:jsonb"`
	Tags         datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Recipe) TableName() string {
	return "recipes"
}
