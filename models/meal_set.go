package models

import "gorm.io/gorm"

// A meal set is a recipe-like definition: its requirements say which
// component roles (and how many of each) make up one complete meal.
type MealSet struct {
	gorm.Model
	SetCode      string               `gorm:"uniqueIndex;not null" json:"set_code"`
	Name         string               `gorm:"not null" json:"name"`
	IsActive     bool                 `gorm:"default:true" json:"is_active"`
	Requirements []MealSetRequirement `json:"requirements"`
}

type MealSetRequirement struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	MealSetID     uint   `gorm:"not null;index" json:"meal_set_id"`
	RequiredType  string `gorm:"type:varchar(16);not null" json:"required_type"` // role, e.g. PROTEIN
	RequiredCount int    `gorm:"not null;default:1" json:"required_count"`
	RequireVeggie bool   `json:"require_veggie"`
}

// Links an inventory item to a meal set under a role. Availability
// queries only consider items linked through these rows.
type MealSetItem struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	MealSetID       uint   `gorm:"not null;index" json:"meal_set_id"`
	RoleType        string `gorm:"type:varchar(16);not null" json:"role_type"`
	InventoryItemID uint   `gorm:"not null;index" json:"inventory_item_id"`
}
