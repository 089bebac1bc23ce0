package models

import "gorm.io/gorm"

// A reusable physical container. The two disposable bag kinds are
// never persisted here; they are synthesized on the free list.
type Container struct {
	gorm.Model
	ContainerCode   string         `gorm:"uniqueIndex;not null" json:"container_code"`
	ContainerTypeID *uint          `json:"container_type_id"`
	ContainerType   *ContainerType `json:"-"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	InUse           bool           `gorm:"default:false" json:"in_use"`
	Note            *string        `json:"note"`
}

type ContainerType struct {
	gorm.Model
	Name     string  `json:"name"`
	Shape    *string `json:"shape"`
	VolumeML *int    `gorm:"column:volume_ml" json:"volume_ml"`
	Material *string `json:"material"`
}
