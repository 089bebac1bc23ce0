package models

import (
	"time"

	"gorm.io/gorm"
)

// Component source kinds.
const (
	SourceRecipe = "RECIPE"
	SourceFree   = "FREE"
)

// A set is a planned batch: components first, then boxes once packed.
type Set struct {
	gorm.Model
	Name       string         `gorm:"not null" json:"name"`
	Note       *string        `json:"note"`
	Components []SetComponent `gorm:"constraint:OnDelete:CASCADE" json:"components"`
	Boxes      []SetBox       `json:"boxes"`
}

// One planned component. The list is replaced wholesale on update so
// sort_order stays dense.
type SetComponent struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	SetID         uint    `gorm:"not null;index" json:"set_id"`
	ComponentType string  `gorm:"type:varchar(16);not null" json:"component_type"`
	SourceType    string  `gorm:"type:varchar(8);not null" json:"source_type"` // RECIPE | FREE
	RecipeID      *uint   `json:"recipe_id"`
	FreeText      *string `json:"free_text"`
	AmountText    *string `json:"amount_text"`
	KcalTotal     *int    `json:"kcal_total"`
	SortOrder     int     `gorm:"not null" json:"sort_order"`
}

// A packed physical unit. ContainerID is nil for disposable bags.
type SetBox struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	SetID         uint      `gorm:"not null;index" json:"set_id"`
	ContainerID   *uint     `json:"container_id"`
	BoxCode       string    `gorm:"type:varchar(16);not null" json:"box_code"`
	BoxType       string    `gorm:"type:varchar(16);not null" json:"box_type"`
	PortionFactor *float64  `json:"portion_factor"`
	PortionText   *string   `json:"portion_text"`
	KcalTotal     *int      `json:"kcal_total"`
	CreatedAt     time.Time `json:"created_at"`
}

type SetBoxComponent struct {
	ID             uint `gorm:"primarykey" json:"id"`
	SetBoxID       uint `gorm:"not null;index" json:"set_box_id"`
	SetComponentID uint `gorm:"not null;index" json:"set_component_id"`
}
