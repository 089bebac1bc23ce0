package services

import (
	"math"
	"strings"
	"time"

	"github.com/punkyalice/Foodprep/models"
	"github.com/punkyalice/Foodprep/utils"

	"gorm.io/gorm"
)

// SetService owns the set-builder plan and the packing transaction
// that turns planned components into boxed inventory items.
type SetService struct {
	db         *gorm.DB
	inventory  *InventoryService
	containers *ContainerService
}

func NewSetService(db *gorm.DB) *SetService {
	return &SetService{
		db:         db,
		inventory:  NewInventoryService(db),
		containers: NewContainerService(db),
	}
}

type ComponentInput struct {
	ComponentType string  `json:"component_type"`
	SourceType    string  `json:"source_type"`
	RecipeID      *uint   `json:"recipe_id"`
	FreeText      *string `json:"free_text"`
	AmountText    *string `json:"amount_text"`
	KcalTotal     *int    `json:"kcal_total"`
}

type SetInput struct {
	Name       string           `json:"name"`
	Note       *string          `json:"note"`
	Components []ComponentInput `json:"components"`
}

type UpdateSetInput struct {
	Name       *string           `json:"name"`
	Note       *string           `json:"note"`
	Components *[]ComponentInput `json:"components"`
}

type SetListRow struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Note      *string   `json:"note"`
	UpdatedAt time.Time `json:"updated_at"`
	BoxCount  int       `json:"box_count"`
}

type BoxView struct {
	ID            uint     `json:"id"`
	BoxCode       string   `json:"box_code"`
	BoxType       string   `json:"box_type"`
	ContainerID   *uint    `json:"container_id"`
	PortionFactor *float64 `json:"portion_factor"`
	PortionText   *string  `json:"portion_text"`
	KcalTotal     *int     `json:"kcal_total"`
	ComponentIDs  []uint   `json:"component_ids"`
}

type SetDetail struct {
	ID         uint                  `json:"id"`
	Name       string                `json:"name"`
	Note       *string               `json:"note"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
	Components []models.SetComponent `json:"components"`
	Boxes      []BoxView             `json:"boxes"`
}

func (s *SetService) ListSets(limit, offset int) ([]SetListRow, error) {
	var rows []SetListRow
	err := s.db.Table("sets s").
		Select("s.id, s.name, s.note, s.updated_at, (SELECT COUNT(*) FROM set_boxes sb WHERE sb.set_id = s.id) AS box_count").
		Where("s.deleted_at IS NULL").
		Order("s.updated_at DESC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// CreateSet validates and persists a new plan. Invalid components are
// silently dropped; at least one must survive.
func (s *SetService) CreateSet(in SetInput) (*SetDetail, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrMissingName
	}

	components := s.normalizeComponents(in.Components)
	if len(components) == 0 {
		return nil, ErrMissingComponents
	}

	var setID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		set := models.Set{Name: name, Note: optionalText(in.Note, 255)}
		if err := tx.Create(&set).Error; err != nil {
			return err
		}
		setID = set.ID
		return insertComponents(tx, setID, components)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSet(setID)
}

// UpdateSet replaces the component list wholesale when one is given,
// keeping sort_order dense. Absent fields keep their current value.
func (s *SetService) UpdateSet(id uint, in UpdateSetInput) (*SetDetail, error) {
	var set models.Set
	if err := s.db.First(&set, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := set.Name
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, ErrMissingName
	}

	note := set.Note
	if in.Note != nil {
		note = optionalText(in.Note, 255)
	}

	var components []models.SetComponent
	if in.Components != nil {
		components = s.normalizeComponents(*in.Components)
		if len(components) == 0 {
			return nil, ErrMissingComponents
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"name": name, "note": note}
		if err := tx.Model(&set).Updates(updates).Error; err != nil {
			return err
		}
		if components == nil {
			return nil
		}
		if err := tx.Where("set_id = ?", id).Delete(&models.SetComponent{}).Error; err != nil {
			return err
		}
		return insertComponents(tx, id, components)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSet(id)
}

func (s *SetService) GetSet(id uint) (*SetDetail, error) {
	var set models.Set
	if err := s.db.First(&set, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var components []models.SetComponent
	err := s.db.Where("set_id = ?", id).
		Order("sort_order ASC, id ASC").
		Find(&components).Error
	if err != nil {
		return nil, err
	}

	boxes, err := s.loadBoxes(id)
	if err != nil {
		return nil, err
	}

	return &SetDetail{
		ID:         set.ID,
		Name:       set.Name,
		Note:       set.Note,
		CreatedAt:  set.CreatedAt,
		UpdatedAt:  set.UpdatedAt,
		Components: components,
		Boxes:      boxes,
	}, nil
}

type BoxInput struct {
	Container     ContainerRef `json:"container_id"`
	BoxType       string       `json:"box_type"`
	PortionFactor *float64     `json:"portion_factor"`
	PortionText   *string      `json:"portion_text"`
	ComponentIDs  []uint       `json:"component_ids"`
}

type CreatedBox struct {
	ID          uint   `json:"id"`
	BoxCode     string `json:"box_code"`
	ContainerID *uint  `json:"container_id"`
}

// packedBox is one validated box request, ready to persist.
type packedBox struct {
	containerID   *uint
	boxType       string
	portionFactor *float64
	portionText   *string
	componentIDs  []uint
	isBag         bool
	storageType   string
}

// AddBoxes packs planned components into physical boxes. Everything
// runs in one transaction: container locks, the free-list re-check,
// box rows, component links, in-use flags and the new inventory items
// all commit together or not at all.
func (s *SetService) AddBoxes(setID uint, boxes []BoxInput) ([]CreatedBox, error) {
	detail, err := s.GetSet(setID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrNotFound
	}

	if len(boxes) == 0 {
		return nil, ErrMissingBoxes
	}

	componentMap := make(map[uint]*models.SetComponent, len(detail.Components))
	for i := range detail.Components {
		componentMap[detail.Components[i].ID] = &detail.Components[i]
	}

	normalized, err := normalizeBoxes(boxes, componentMap)
	if err != nil {
		return nil, err
	}

	var created []CreatedBox
	var createdItems []*models.InventoryItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var realIDs []uint
		for _, box := range normalized {
			if !box.isBag {
				realIDs = append(realIDs, *box.containerID)
			}
		}

		// optimistic plan, pessimistic commit: lock the referenced
		// containers, then re-read the free list under those locks
		if err := s.containers.Lock(tx, realIDs); err != nil {
			return err
		}
		free, err := s.containers.FreeIDs(tx)
		if err != nil {
			return err
		}
		for _, id := range realIDs {
			if !free[id] {
				return ErrContainerNotAvailable
			}
		}

		today := time.Now().Format("2006-01-02")
		for _, box := range normalized {
			boxCode, err := s.nextBoxCode(tx, box.boxType)
			if err != nil {
				return err
			}
			kcalTotal := boxKcal(box.componentIDs, componentMap, box.portionFactor)

			row := models.SetBox{
				SetID:         setID,
				ContainerID:   box.containerID,
				BoxCode:       boxCode,
				BoxType:       box.boxType,
				PortionFactor: box.portionFactor,
				PortionText:   box.portionText,
				KcalTotal:     kcalTotal,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}

			for _, componentID := range box.componentIDs {
				link := models.SetBoxComponent{SetBoxID: row.ID, SetComponentID: componentID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}

			if !box.isBag {
				if err := s.containers.SetInUse(tx, []uint{*box.containerID}, true); err != nil {
					return err
				}
			}

			item, err := s.inventory.Create(tx, CreateItemInput{
				ItemType:    utils.PrefixForBoxType(box.boxType),
				Name:        detail.Name,
				FrozenAt:    today,
				PortionText: box.portionText,
				Kcal:        kcalTotal,
				ContainerID: box.containerID,
				StorageType: box.storageType,
			})
			if err != nil {
				return err
			}
			createdItems = append(createdItems, item)

			created = append(created, CreatedBox{
				ID:          row.ID,
				BoxCode:     boxCode,
				ContainerID: box.containerID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range createdItems {
		EmitInventoryEvent("inventory.created", item.ID, item.IDCode, "", models.StatusInFreezer)
	}
	return created, nil
}

// normalizeComponents keeps only valid component rows: a role type, a
// source that is exactly RECIPE (with recipe id) or FREE (with text
// and explicit kcal). Invalid rows are dropped, not errored. RECIPE
// rows without explicit kcal are prefilled from the recipe.
func (s *SetService) normalizeComponents(input []ComponentInput) []models.SetComponent {
	var result []models.SetComponent
	order := 0
	for _, row := range input {
		componentType := strings.ToUpper(strings.TrimSpace(row.ComponentType))
		sourceType := strings.ToUpper(strings.TrimSpace(row.SourceType))
		if componentType == "" || (sourceType != models.SourceRecipe && sourceType != models.SourceFree) {
			continue
		}

		var recipeID *uint
		var freeText *string
		kcal := row.KcalTotal

		if sourceType == models.SourceRecipe {
			if row.RecipeID == nil || *row.RecipeID == 0 {
				continue
			}
			recipeID = row.RecipeID
			if kcal == nil {
				kcal = s.recipeKcal(*recipeID)
			}
		} else {
			freeText = optionalText(row.FreeText, 255)
			if freeText == nil {
				continue
			}
			if kcal == nil {
				continue
			}
		}

		result = append(result, models.SetComponent{
			ComponentType: componentType,
			SourceType:    sourceType,
			RecipeID:      recipeID,
			FreeText:      freeText,
			AmountText:    optionalText(row.AmountText, 100),
			KcalTotal:     kcal,
			SortOrder:     order,
		})
		order++
	}
	return result
}

// recipeKcal looks up a recipe's kcal_per_portion; nil when the
// recipe is missing or carries none.
func (s *SetService) recipeKcal(recipeID uint) *int {
	var recipe models.Recipe
	if err := s.db.First(&recipe, recipeID).Error; err != nil {
		return nil
	}
	return recipe.KcalPerPortion
}

// normalizeBoxes validates the requested boxes against the persisted
// plan. Boxes without a type or any requested component are skipped;
// a real container referenced twice, unknown component ids, or a box
// without any portion information abort the whole request.
func normalizeBoxes(boxes []BoxInput, components map[uint]*models.SetComponent) ([]packedBox, error) {
	var result []packedBox
	usedContainers := map[uint]bool{}
	for _, box := range boxes {
		boxType := strings.ToUpper(strings.TrimSpace(box.BoxType))
		if boxType == "" || len(box.ComponentIDs) == 0 {
			continue
		}

		isBag := box.Container.IsBag()
		var containerID *uint
		if !isBag {
			id := box.Container.ID
			if usedContainers[id] {
				return nil, ErrDuplicateContainer
			}
			usedContainers[id] = true
			containerID = &id
		}

		seen := map[uint]bool{}
		var componentIDs []uint
		for _, id := range box.ComponentIDs {
			if seen[id] || components[id] == nil {
				seen[id] = true
				continue
			}
			seen[id] = true
			componentIDs = append(componentIDs, id)
		}
		if len(componentIDs) == 0 {
			return nil, ErrInvalidComponent
		}

		portionText := optionalText(box.PortionText, 50)
		if box.PortionFactor == nil && portionText == nil {
			return nil, ErrPortionMissing
		}

		result = append(result, packedBox{
			containerID:   containerID,
			boxType:       boxType,
			portionFactor: box.PortionFactor,
			portionText:   portionText,
			componentIDs:  componentIDs,
			isBag:         isBag,
			storageType:   box.Container.StorageType(),
		})
	}
	return result, nil
}

// boxKcal sums the referenced components' calories, scaled by the
// portion factor. Unknown calories anywhere make the whole total
// unknown, never zero or a partial sum.
func boxKcal(componentIDs []uint, components map[uint]*models.SetComponent, portionFactor *float64) *int {
	total := 0
	for _, id := range componentIDs {
		component := components[id]
		if component == nil || component.KcalTotal == nil {
			return nil
		}
		total += *component.KcalTotal
	}
	if portionFactor != nil {
		total = int(math.Round(float64(total) * *portionFactor))
	}
	return &total
}

// nextBoxCode picks the smallest unused positive number among the
// codes currently tied up by in-use boxes of this role and in-use
// containers sharing the prefix. Freed codes are reused.
func (s *SetService) nextBoxCode(tx *gorm.DB, boxType string) (string, error) {
	prefix := utils.PrefixForBoxType(boxType)

	var boxCodes []string
	err := tx.Table("set_boxes sb").
		Joins("JOIN containers c ON c.id = sb.container_id").
		Where("sb.box_type = ? AND c.in_use = ?", boxType, true).
		Pluck("sb.box_code", &boxCodes).Error
	if err != nil {
		return "", err
	}

	var containerCodes []string
	err = tx.Model(&models.Container{}).
		Where("in_use = ? AND container_code LIKE ?", true, prefix+"%").
		Pluck("container_code", &containerCodes).Error
	if err != nil {
		return "", err
	}

	n := utils.NextFreeNumber(prefix, append(boxCodes, containerCodes...))
	return utils.FormatCode(prefix, n), nil
}

func (s *SetService) loadBoxes(setID uint) ([]BoxView, error) {
	var boxes []models.SetBox
	if err := s.db.Where("set_id = ?", setID).Order("id ASC").Find(&boxes).Error; err != nil {
		return nil, err
	}

	result := make([]BoxView, 0, len(boxes))
	for _, box := range boxes {
		var componentIDs []uint
		err := s.db.Model(&models.SetBoxComponent{}).
			Where("set_box_id = ?", box.ID).
			Pluck("set_component_id", &componentIDs).Error
		if err != nil {
			return nil, err
		}
		result = append(result, BoxView{
			ID:            box.ID,
			BoxCode:       box.BoxCode,
			BoxType:       box.BoxType,
			ContainerID:   box.ContainerID,
			PortionFactor: box.PortionFactor,
			PortionText:   box.PortionText,
			KcalTotal:     box.KcalTotal,
			ComponentIDs:  componentIDs,
		})
	}
	return result, nil
}

func insertComponents(tx *gorm.DB, setID uint, components []models.SetComponent) error {
	for i := range components {
		components[i].ID = 0
		components[i].SetID = setID
		if err := tx.Create(&components[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
