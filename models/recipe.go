package models

import "gorm.io/gorm"

type Recipe struct {
	gorm.Model
	Name                  string  `gorm:"not null" json:"name"`
	RecipeType            string  `gorm:"type:varchar(16)" json:"recipe_type"`
	IngredientsText       *string `json:"ingredients_text"`
	PrepText              *string `json:"prep_text"`
	ReheatText            *string `json:"reheat_text"`
	YieldPortions         *int    `json:"yield_portions"`
	KcalPerPortion        *int    `json:"kcal_per_portion"`
	IsVeggie              bool    `json:"is_veggie"`
	IsVegan               bool    `json:"is_vegan"`
	TagsText              *string `json:"tags_text"`
	Description           *string `json:"description"`
	Instructions          *string `json:"instructions"`
	DefaultBestBeforeDays *int    `json:"default_best_before_days"`
}
