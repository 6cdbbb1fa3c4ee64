package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type Recipe struct {
	Id           uuid.UUID
	Name         string
	Description  string
	Cuisine      string
	Servings     int
	TotalMinutes int
	Ingredients  []Ingredient
	Steps        []string
	Nutrition    Nutrition
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
