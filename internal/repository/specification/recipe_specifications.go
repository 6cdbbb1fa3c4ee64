package specification

import (
	"gorm.io/gorm"
)

type ByCuisine struct {
	Cuisine string
}

func (s ByCuisine) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(cuisine) = LOWER(?)", s.Cuisine)
}

type ByMaxMinutes struct {
	Minutes int
}

func (s ByMaxMinutes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("total_minutes > 0 AND total_minutes <= ?", s.Minutes)
}

type ByNameLike struct {
	Name string
}

func (s ByNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Name+"%")
}

// ByTag matches recipes whose jsonb tags array contains the tag.
type ByTag struct {
	Tag string
}

func (s ByTag) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tags @> ?", `["`+s.Tag+`"]`)
}
