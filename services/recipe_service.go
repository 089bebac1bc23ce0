package services

import (
	"strings"

	"github.com/punkyalice/Foodprep/models"

	"gorm.io/gorm"
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

type RecipeFilters struct {
	Q          string
	RecipeType string
	Veggie     bool
	Vegan      bool
	Sort       string // name | newest
}

func (s *RecipeService) List(f RecipeFilters, limit, offset int) ([]models.Recipe, int64, error) {
	q := s.db.Model(&models.Recipe{})
	if f.Q != "" {
		q = q.Where("name LIKE ?", "%"+f.Q+"%")
	}
	if f.RecipeType != "" {
		q = q.Where("recipe_type = ?", strings.ToUpper(f.RecipeType))
	}
	if f.Veggie {
		q = q.Where("is_veggie = ?", true)
	}
	if f.Vegan {
		q = q.Where("is_vegan = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name ASC"
	if f.Sort == "newest" {
		order = "created_at DESC"
	}

	var recipes []models.Recipe
	err := q.Order(order).Limit(limit).Offset(offset).Find(&recipes).Error
	return recipes, total, err
}

func (s *RecipeService) Get(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

type RecipeInput struct {
	Name                  *string `json:"name"`
	RecipeType            *string `json:"recipe_type"`
	IngredientsText       *string `json:"ingredients_text"`
	PrepText              *string `json:"prep_text"`
	ReheatText            *string `json:"reheat_text"`
	YieldPortions         *int    `json:"yield_portions"`
	KcalPerPortion        *int    `json:"kcal_per_portion"`
	IsVeggie              *bool   `json:"is_veggie"`
	IsVegan               *bool   `json:"is_vegan"`
	TagsText              *string `json:"tags_text"`
	Description           *string `json:"description"`
	Instructions          *string `json:"instructions"`
	DefaultBestBeforeDays *int    `json:"default_best_before_days"`
}

func (s *RecipeService) Create(in RecipeInput) (*models.Recipe, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, ErrMissingName
	}

	recipe := models.Recipe{Name: strings.TrimSpace(*in.Name), RecipeType: "MEAL"}
	applyRecipeInput(&recipe, in)
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) Update(id uint, in RecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrMissingName
		}
		recipe.Name = name
	}
	applyRecipeInput(recipe, in)
	if err := s.db.Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func applyRecipeInput(recipe *models.Recipe, in RecipeInput) {
	if in.RecipeType != nil && *in.RecipeType != "" {
		recipe.RecipeType = strings.ToUpper(strings.TrimSpace(*in.RecipeType))
	}
	if in.IngredientsText != nil {
		recipe.IngredientsText = optionalText(in.IngredientsText, 4000)
	}
	if in.PrepText != nil {
		recipe.PrepText = optionalText(in.PrepText, 4000)
	}
	if in.ReheatText != nil {
		recipe.ReheatText = optionalText(in.ReheatText, 1000)
	}
	if in.YieldPortions != nil {
		recipe.YieldPortions = in.YieldPortions
	}
	if in.KcalPerPortion != nil {
		recipe.KcalPerPortion = in.KcalPerPortion
	}
	if in.IsVeggie != nil {
		recipe.IsVeggie = *in.IsVeggie
	}
	if in.IsVegan != nil {
		recipe.IsVegan = *in.IsVegan
	}
	if in.TagsText != nil {
		recipe.TagsText = optionalText(in.TagsText, 500)
	}
	if in.Description != nil {
		recipe.Description = optionalText(in.Description, 4000)
	}
	if in.Instructions != nil {
		recipe.Instructions = optionalText(in.Instructions, 8000)
	}
	if in.DefaultBestBeforeDays != nil {
		recipe.DefaultBestBeforeDays = in.DefaultBestBeforeDays
	}
}
