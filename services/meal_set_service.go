package services

import (
	"time"

	"github.com/punkyalice/Foodprep/models"
	"github.com/punkyalice/Foodprep/utils"

	"gorm.io/gorm"
)

// MealSetService computes, for each meal set, how many complete meals
// the freezer currently holds and which items FIFO would consume.
type MealSetService struct {
	db *gorm.DB
}

func NewMealSetService(db *gorm.DB) *MealSetService {
	return &MealSetService{db: db}
}

// AvailableItem is one FIFO candidate for a requirement role.
type AvailableItem struct {
	ID                 uint       `json:"id"`
	IDCode             string     `json:"id_code"`
	Name               string     `json:"name"`
	ItemType           string     `json:"item_type"`
	IsVeggie           bool       `json:"is_veggie"`
	IsVegan            bool       `json:"is_vegan"`
	FrozenAt           time.Time  `json:"frozen_at"`
	BestBeforeAt       *time.Time `json:"best_before_at"`
	BestBeforeDays     int        `json:"best_before_days"`
	ContainerCode      *string    `json:"container_code"`
	ComputedBestBefore time.Time  `json:"computed_best_before"`
}

type SetSummary struct {
	ID            uint            `json:"id"`
	SetCode       string          `json:"set_code"`
	Name          string          `json:"name"`
	CompleteCount int             `json:"complete_count"`
	FifoIDs       []string        `json:"fifo_ids"`
	IsVeggie      bool            `json:"is_veggie"`
	IsVegan       bool            `json:"is_vegan"`
	IsExpiring    bool            `json:"is_expiring"`
	Items         []AvailableItem `json:"items,omitempty"`
}

// ListSets returns availability summaries for active meal sets. Sets
// with zero complete meals (or suppressed by the expiring/veggie
// post-filter) are dropped, except sets without any requirement rows,
// which are reported with a zero count.
func (s *MealSetService) ListSets(f Filters, limit, offset int) ([]SetSummary, error) {
	q := s.db.Model(&models.MealSet{}).Where("is_active = ?", true)
	if f.Q != "" {
		q = q.Where("name LIKE ?", "%"+f.Q+"%")
	}

	var sets []models.MealSet
	if err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&sets).Error; err != nil {
		return nil, err
	}

	result := make([]SetSummary, 0, len(sets))
	for _, set := range sets {
		summary, err := s.buildSummary(set, f, false)
		if err != nil {
			return nil, err
		}
		if summary == nil {
			continue
		}
		result = append(result, *summary)
	}
	return result, nil
}

// GetSet returns the availability summary for one meal set, including
// the full selected item records. Nil when the set does not exist or
// the filters suppress it.
func (s *MealSetService) GetSet(id uint, f Filters) (*SetSummary, error) {
	var set models.MealSet
	err := s.db.Where("id = ? AND is_active = ?", id, true).First(&set).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return s.buildSummary(set, f, true)
}

// ChooseFifoItems picks the oldest items for exactly one complete
// meal: required_count per role, FIFO. Empty when any role is short.
func (s *MealSetService) ChooseFifoItems(setID uint) ([]uint, error) {
	reqs, err := s.loadRequirements(setID)
	if err != nil || len(reqs) == 0 {
		return nil, err
	}

	var selected []uint
	for _, req := range reqs {
		available, err := s.loadAvailable(setID, req.RequiredType, req.RequireVeggie)
		if err != nil {
			return nil, err
		}
		required := requiredCount(req)
		if len(available) < required {
			return nil, nil
		}
		for _, item := range available[:required] {
			selected = append(selected, item.ID)
		}
	}
	return selected, nil
}

func (s *MealSetService) buildSummary(set models.MealSet, f Filters, includeItems bool) (*SetSummary, error) {
	reqs, err := s.loadRequirements(set.ID)
	if err != nil {
		return nil, err
	}

	if len(reqs) == 0 {
		summary := &SetSummary{
			ID:      set.ID,
			SetCode: set.SetCode,
			Name:    set.Name,
			FifoIDs: []string{},
		}
		if includeItems {
			summary.Items = []AvailableItem{}
		}
		return summary, nil
	}

	complete, selected, err := selectCompleteMeals(reqs, f.Veggie, func(role string, veggie bool) ([]AvailableItem, error) {
		return s.loadAvailable(set.ID, role, veggie)
	})
	if err != nil {
		return nil, err
	}
	if complete < 1 {
		return nil, nil
	}

	flags := aggregateFlags(selected, time.Now())
	if f.Expiring && !flags.expiring {
		return nil, nil
	}
	if f.Veggie && !flags.veggie {
		return nil, nil
	}

	fifoIDs := make([]string, 0, len(selected))
	for _, item := range selected {
		fifoIDs = append(fifoIDs, item.IDCode)
	}

	summary := &SetSummary{
		ID:            set.ID,
		SetCode:       set.SetCode,
		Name:          set.Name,
		CompleteCount: complete,
		FifoIDs:       fifoIDs,
		IsVeggie:      flags.veggie,
		IsVegan:       flags.vegan,
		IsExpiring:    flags.expiring,
	}
	if includeItems {
		summary.Items = selected
	}
	return summary, nil
}

// roleLoader loads the FIFO-ordered candidates for one role.
type roleLoader func(role string, requireVeggie bool) ([]AvailableItem, error)

// selectCompleteMeals computes the set-wide complete count (minimum of
// floor(candidates/required) across roles) and, once it is fixed, the
// exact FIFO selection: required_count x complete_count per role,
// never partial meals. If any role drops to zero the remaining roles
// are never loaded and nothing is selected.
func selectCompleteMeals(reqs []models.MealSetRequirement, veggieFilter bool, load roleLoader) (int, []AvailableItem, error) {
	type roleItems struct {
		required int
		items    []AvailableItem
	}

	complete := -1
	loaded := make([]roleItems, 0, len(reqs))
	for _, req := range reqs {
		needsVeggie := req.RequireVeggie || veggieFilter
		available, err := load(req.RequiredType, needsVeggie)
		if err != nil {
			return 0, nil, err
		}
		required := requiredCount(req)
		if n := len(available) / required; complete == -1 || n < complete {
			complete = n
		}
		if complete == 0 {
			return 0, nil, nil
		}
		loaded = append(loaded, roleItems{required: required, items: available})
	}
	if complete < 0 {
		complete = 0
	}

	var selected []AvailableItem
	for _, role := range loaded {
		selected = append(selected, role.items[:role.required*complete]...)
	}
	return complete, selected, nil
}

type dietFlags struct {
	veggie   bool
	vegan    bool
	expiring bool
}

// aggregateFlags folds item flags into meal-level ones: veggie/vegan
// only when every item qualifies, expiring when any item's computed
// best-before falls within seven days of now.
func aggregateFlags(items []AvailableItem, now time.Time) dietFlags {
	flags := dietFlags{veggie: true, vegan: true}
	for _, item := range items {
		flags.veggie = flags.veggie && item.IsVeggie
		flags.vegan = flags.vegan && item.IsVegan
		if utils.ExpiringSoon(item.ComputedBestBefore, now, 7) {
			flags.expiring = true
		}
	}
	return flags
}

func requiredCount(req models.MealSetRequirement) int {
	if req.RequiredCount < 1 {
		return 1
	}
	return req.RequiredCount
}

func (s *MealSetService) loadRequirements(setID uint) ([]models.MealSetRequirement, error) {
	var reqs []models.MealSetRequirement
	err := s.db.Where("meal_set_id = ?", setID).Find(&reqs).Error
	return reqs, err
}

// loadAvailable returns IN_FREEZER items linked to the set under the
// given role, oldest frozen first with id as tie-break.
func (s *MealSetService) loadAvailable(setID uint, role string, requireVeggie bool) ([]AvailableItem, error) {
	q := s.db.Table("meal_set_items msi").
		Select("ii.id, ii.id_code, ii.name, ii.item_type, ii.is_veggie, ii.is_vegan, ii.frozen_at, ii.best_before_at, "+
			"itd.best_before_days, c.container_code, "+computedBestBefore+" AS computed_best_before").
		Joins("JOIN inventory_items ii ON ii.id = msi.inventory_item_id").
		Joins("JOIN item_type_defaults itd ON itd.item_type = ii.item_type").
		Joins("LEFT JOIN containers c ON c.id = ii.container_id").
		Where("msi.meal_set_id = ? AND msi.role_type = ? AND ii.status = ?", setID, role, models.StatusInFreezer)

	if requireVeggie {
		q = q.Where("ii.is_veggie = ?", true)
	}

	var items []AvailableItem
	err := q.Order("ii.frozen_at ASC, ii.id ASC").Scan(&items).Error
	return items, err
}
