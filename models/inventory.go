package models

import (
	"time"

	"gorm.io/gorm"
)

// Item lifecycle states.
const (
	StatusInFreezer = "IN_FREEZER"
	StatusTakenOut  = "TAKEN_OUT"
)

// Storage types for a physical item.
const (
	StorageBox        = "BOX"
	StorageFree       = "FREE"
	StorageFreezerBag = "FREEZER_BAG"
	StorageVacuumBag  = "VACUUM_BAG"
)

// One physical item in the freezer. Items are never deleted:
// status transitions are appended to inventory_events instead.
type InventoryItem struct {
	gorm.Model
	IDCode          string     `gorm:"column:id_code;type:varchar(16);uniqueIndex;not null" json:"id_code"`
	ItemType        string     `gorm:"type:varchar(1);not null;index" json:"item_type"`
	Name            string     `gorm:"not null" json:"name"`
	RecipeID        *uint      `json:"recipe_id"`
	IsVeggie        bool       `json:"is_veggie"`
	IsVegan         bool       `json:"is_vegan"`
	PortionText     *string    `json:"portion_text"`
	WeightG         *int       `json:"weight_g"`
	VolumeML        *int       `gorm:"column:volume_ml" json:"volume_ml"`
	Kcal            *int       `json:"kcal"`
	FrozenAt        time.Time  `gorm:"type:date;not null" json:"frozen_at"`
	BestBeforeAt    *time.Time `gorm:"type:date" json:"best_before_at"`
	StorageLocation *string    `json:"storage_location"`
	PrepNotes       *string    `json:"prep_notes"`
	ThawMethod      string     `json:"thaw_method"`
	ReheatMinutes   *int       `json:"reheat_minutes"`
	Status          string     `gorm:"type:varchar(16);default:IN_FREEZER;index" json:"status"`
	StorageType     string     `gorm:"type:varchar(16);default:BOX" json:"storage_type"`
	ContainerID     *uint      `json:"container_id"` // non-nil only when StorageType == BOX
	Container       *Container `json:"-"`
	StatusChangedAt *time.Time `json:"status_changed_at"`
}

// Append-only log of item transitions.
type InventoryEvent struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	InventoryItemID uint      `gorm:"not null;index" json:"inventory_item_id"`
	EventType       string    `gorm:"type:varchar(32);not null" json:"event_type"` // CREATED | STATUS_CHANGED
	FromStatus      *string   `gorm:"type:varchar(16)" json:"from_status"`
	ToStatus        string    `gorm:"type:varchar(16);not null" json:"to_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Per-type running counter backing id_code generation. Numbers are
// strictly monotonic and never reused.
type IDCounter struct {
	ItemType   string `gorm:"primarykey;type:varchar(1)"`
	NextNumber int    `gorm:"not null;default:1"`
}

func (IDCounter) TableName() string { return "id_counters" }

// Static per-type defaults: shelf life, thaw method, reheat time.
type ItemTypeDefault struct {
	ItemType       string  `gorm:"primarykey;type:varchar(1)" json:"item_type"`
	Note           *string `json:"note"`
	BestBeforeDays int     `gorm:"not null" json:"best_before_days"`
	ThawMethod     string  `gorm:"default:NONE" json:"thaw_method"`
	ReheatMinutes  *int    `json:"reheat_minutes"`
}

func (ItemTypeDefault) TableName() string { return "item_type_defaults" }
