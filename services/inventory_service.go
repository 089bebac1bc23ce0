package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/punkyalice/Foodprep/models"
	"github.com/punkyalice/Foodprep/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryService struct {
	db *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// computedBestBefore is the SQL form of the derived best-before date.
const computedBestBefore = "COALESCE(ii.best_before_at, ii.frozen_at + itd.best_before_days * INTERVAL '1 day')"

type InventoryRow struct {
	ID                 uint       `json:"id"`
	IDCode             string     `json:"id_code"`
	Name               string     `json:"name"`
	ItemType           string     `json:"item_type"`
	IsVeggie           bool       `json:"is_veggie"`
	IsVegan            bool       `json:"is_vegan"`
	FrozenAt           time.Time  `json:"frozen_at"`
	BestBeforeAt       *time.Time `json:"best_before_at"`
	StorageType        string     `json:"storage_type"`
	BestBeforeDays     int        `json:"best_before_days"`
	ContainerCode      *string    `json:"container_code"`
	ComputedBestBefore time.Time  `json:"computed_best_before"`
}

// List returns IN_FREEZER items for one of the three views: "meals"
// (prepared meals), "ingredient" (raw bases), or "single" (everything
// else). FIFO order, oldest first.
func (s *InventoryService) List(view string, f Filters, limit, offset int) ([]InventoryRow, error) {
	mealTypes := []string{"MEAL", "M"}
	ingredientTypes := []string{"INGREDIENT", "Z"}

	q := s.db.Table("inventory_items ii").
		Select("ii.id, ii.id_code, ii.name, ii.item_type, ii.is_veggie, ii.is_vegan, ii.frozen_at, ii.best_before_at, "+
			"ii.storage_type, itd.best_before_days, c.container_code, "+computedBestBefore+" AS computed_best_before").
		Joins("JOIN item_type_defaults itd ON itd.item_type = ii.item_type").
		Joins("LEFT JOIN containers c ON c.id = ii.container_id").
		Where("ii.status = ?", models.StatusInFreezer)

	switch view {
	case "meals":
		q = q.Where("ii.item_type IN ?", mealTypes)
	case "ingredient":
		q = q.Where("ii.item_type IN ?", ingredientTypes)
	default:
		q = q.Where("ii.item_type NOT IN ?", append(mealTypes, ingredientTypes...))
	}

	if f.Q != "" {
		q = q.Where("ii.name LIKE ?", "%"+f.Q+"%")
	}
	if f.Veggie {
		q = q.Where("ii.is_veggie = ?", true)
	}
	if f.Expiring {
		q = q.Where(computedBestBefore + " <= CURRENT_DATE + INTERVAL '7 days'")
	}

	var rows []InventoryRow
	err := q.Order("ii.frozen_at ASC, ii.id ASC").
		Limit(limit).Offset(offset).
		Scan(&rows).Error
	return rows, err
}

type CreateItemInput struct {
	IDCode          string  `json:"id_code"`
	ItemType        string  `json:"item_type"`
	Name            string  `json:"name"`
	RecipeID        *uint   `json:"recipe_id"`
	IsVeggie        bool    `json:"is_veggie"`
	IsVegan         bool    `json:"is_vegan"`
	PortionText     *string `json:"portion_text"`
	WeightG         *int    `json:"weight_g"`
	VolumeML        *int    `json:"volume_ml"`
	Kcal            *int    `json:"kcal"`
	FrozenAt        string  `json:"frozen_at"` // YYYY-MM-DD
	BestBeforeAt    *string `json:"best_before_at"`
	StorageLocation *string `json:"storage_location"`
	PrepNotes       *string `json:"prep_notes"`
	ThawMethod      *string `json:"thaw_method"`
	ReheatMinutes   *int    `json:"reheat_minutes"`
	StorageType     string  `json:"storage_type"`
	ContainerID     *uint   `json:"container_id"`
}

// CreateItem runs Create in its own transaction and broadcasts the
// resulting event once committed.
func (s *InventoryService) CreateItem(in CreateItemInput) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.Create(tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	EmitInventoryEvent("inventory.created", item.ID, item.IDCode, "", models.StatusInFreezer)
	return item, nil
}

// Create validates and inserts one inventory item inside the caller's
// transaction. An id_code is generated from the per-type counter
// unless the caller supplies one.
func (s *InventoryService) Create(tx *gorm.DB, in CreateItemInput) (*models.InventoryItem, error) {
	if in.ItemType == "" {
		return nil, fmt.Errorf("%w: item_type", ErrMissingField)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.FrozenAt == "" {
		return nil, fmt.Errorf("%w: frozen_at", ErrMissingField)
	}

	frozenAt, err := time.Parse("2006-01-02", in.FrozenAt)
	if err != nil {
		return nil, fmt.Errorf("%w: frozen_at", ErrMissingField)
	}

	var bestBeforeAt *time.Time
	if in.BestBeforeAt != nil && *in.BestBeforeAt != "" {
		bb, err := time.Parse("2006-01-02", *in.BestBeforeAt)
		if err != nil {
			return nil, fmt.Errorf("%w: best_before_at", ErrMissingField)
		}
		bestBeforeAt = &bb
	}

	storageType := strings.ToUpper(in.StorageType)
	if storageType == "" {
		storageType = models.StorageBox
	}
	switch storageType {
	case models.StorageBox, models.StorageFree, models.StorageFreezerBag, models.StorageVacuumBag:
	default:
		return nil, ErrInvalidStorageType
	}

	containerID := in.ContainerID
	if storageType != models.StorageBox {
		containerID = nil
	}

	idCode := in.IDCode
	if idCode == "" {
		idCode, err = s.nextIDCode(tx, in.ItemType)
		if err != nil {
			return nil, err
		}
	}

	var defaults models.ItemTypeDefault
	if err := tx.Where("item_type = ?", in.ItemType).First(&defaults).Error; err != nil {
		defaults = models.ItemTypeDefault{ThawMethod: "NONE"}
	}

	thawMethod := defaults.ThawMethod
	if in.ThawMethod != nil && *in.ThawMethod != "" {
		thawMethod = *in.ThawMethod
	}
	reheatMinutes := defaults.ReheatMinutes
	if in.ReheatMinutes != nil {
		reheatMinutes = in.ReheatMinutes
	}

	item := &models.InventoryItem{
		IDCode:          idCode,
		ItemType:        in.ItemType,
		Name:            strings.TrimSpace(in.Name),
		RecipeID:        in.RecipeID,
		IsVeggie:        in.IsVeggie,
		IsVegan:         in.IsVegan,
		PortionText:     in.PortionText,
		WeightG:         in.WeightG,
		VolumeML:        in.VolumeML,
		Kcal:            in.Kcal,
		FrozenAt:        frozenAt,
		BestBeforeAt:    bestBeforeAt,
		StorageLocation: in.StorageLocation,
		PrepNotes:       in.PrepNotes,
		ThawMethod:      thawMethod,
		ReheatMinutes:   reheatMinutes,
		Status:          models.StatusInFreezer,
		StorageType:     storageType,
		ContainerID:     containerID,
	}
	if err := tx.Create(item).Error; err != nil {
		return nil, err
	}

	event := models.InventoryEvent{
		InventoryItemID: item.ID,
		EventType:       "CREATED",
		ToStatus:        models.StatusInFreezer,
	}
	if err := tx.Create(&event).Error; err != nil {
		return nil, err
	}

	return item, nil
}

// TakeOutItems runs TakeOut in its own transaction and broadcasts the
// transitions once committed.
func (s *InventoryService) TakeOutItems(ids []uint) ([]uint, error) {
	var taken []models.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		taken, err = s.TakeOut(tx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]uint, 0, len(taken))
	for _, item := range taken {
		out = append(out, item.ID)
		EmitInventoryEvent("inventory.taken_out", item.ID, item.IDCode, models.StatusInFreezer, models.StatusTakenOut)
	}
	return out, nil
}

// TakeOut transitions items to TAKEN_OUT inside the caller's
// transaction. The rows are locked first; any missing id fails with
// not_found, any item no longer IN_FREEZER with invalid_status, and
// nothing is changed. Backing containers are freed.
func (s *InventoryService) TakeOut(tx *gorm.DB, ids []uint) ([]models.InventoryItem, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var items []models.InventoryItem
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) != len(ids) {
		return nil, ErrNotFound
	}
	for _, item := range items {
		if item.Status != models.StatusInFreezer {
			return nil, ErrInvalidStatus
		}
	}

	now := time.Now()
	if err := tx.Model(&models.InventoryItem{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"status":            models.StatusTakenOut,
			"status_changed_at": now,
		}).Error; err != nil {
		return nil, err
	}

	from := models.StatusInFreezer
	for _, id := range ids {
		event := models.InventoryEvent{
			InventoryItemID: id,
			EventType:       "STATUS_CHANGED",
			FromStatus:      &from,
			ToStatus:        models.StatusTakenOut,
		}
		if err := tx.Create(&event).Error; err != nil {
			return nil, err
		}
	}

	var containerIDs []uint
	for _, item := range items {
		if item.ContainerID != nil {
			containerIDs = append(containerIDs, *item.ContainerID)
		}
	}
	if len(containerIDs) > 0 {
		if err := tx.Model(&models.Container{}).
			Where("id IN ?", containerIDs).
			Update("in_use", false).Error; err != nil {
			return nil, err
		}
	}

	return items, nil
}

func (s *InventoryService) nextIDCode(tx *gorm.DB, itemType string) (string, error) {
	var counter models.IDCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("item_type = ?", itemType).
		First(&counter).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", ErrCounterMissing
		}
		return "", err
	}

	err = tx.Model(&models.IDCounter{}).
		Where("item_type = ?", itemType).
		Update("next_number", gorm.Expr("next_number + 1")).Error
	if err != nil {
		return "", err
	}

	return utils.FormatCode(itemType, counter.NextNumber), nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
