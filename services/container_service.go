package services

import (
	"errors"
	"strings"

	"github.com/punkyalice/Foodprep/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContainerService struct {
	db *gorm.DB
}

func NewContainerService(db *gorm.DB) *ContainerService {
	return &ContainerService{db: db}
}

// ContainerRow is the API shape of one container. ID is nil for the
// two virtual bag rows, which carry their bag token in Ref instead.
type ContainerRow struct {
	ID              *uint   `json:"id"`
	Ref             string  `json:"ref"` // numeric id as string, or bag token
	ContainerCode   string  `json:"container_code"`
	ContainerTypeID *uint   `json:"container_type_id"`
	IsActive        bool    `json:"is_active"`
	InUse           bool    `json:"in_use"`
	Note            *string `json:"note"`
	Shape           *string `json:"shape"`
	VolumeML        *int    `json:"volume_ml"`
	Material        *string `json:"material"`
}

// List returns persisted containers; active is "1", "0" or "all".
func (s *ContainerService) List(active string) ([]ContainerRow, error) {
	q := s.db.Table("containers c").
		Select("c.id, c.container_code, c.container_type_id, c.is_active, c.in_use, c.note, ct.shape, ct.volume_ml, ct.material").
		Joins("LEFT JOIN container_types ct ON ct.id = c.container_type_id")

	switch active {
	case "1":
		q = q.Where("c.is_active = ?", true)
	case "0":
		q = q.Where("c.is_active = ?", false)
	}

	var rows []ContainerRow
	if err := q.Order("c.container_code ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Ref = refForID(rows[i].ID)
	}
	return rows, nil
}

// ListFree returns active, unused containers plus the two disposable
// bag pseudo-containers, which are always free and never persisted.
func (s *ContainerService) ListFree() ([]ContainerRow, error) {
	q := s.db.Table("containers c").
		Select("c.id, c.container_code, c.container_type_id, c.is_active, c.in_use, c.note, ct.shape, ct.volume_ml, ct.material").
		Joins("LEFT JOIN container_types ct ON ct.id = c.container_type_id").
		Where("c.is_active = ? AND c.in_use = ?", true, false)

	var rows []ContainerRow
	if err := q.Order("c.container_code ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Ref = refForID(rows[i].ID)
	}

	disposable := "disposable"
	rows = append(rows,
		ContainerRow{Ref: models.StorageFreezerBag, ContainerCode: "Freezer bag", IsActive: true, Note: &disposable},
		ContainerRow{Ref: models.StorageVacuumBag, ContainerCode: "Vacuum bag", IsActive: true, Note: &disposable},
	)
	return rows, nil
}

// FreeIDs returns the ids of currently free real containers, read
// inside the caller's transaction so a preceding Lock makes the
// answer authoritative.
func (s *ContainerService) FreeIDs(tx *gorm.DB) (map[uint]bool, error) {
	var ids []uint
	err := tx.Model(&models.Container{}).
		Where("is_active = ? AND in_use = ?", true, false).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	free := make(map[uint]bool, len(ids))
	for _, id := range ids {
		free[id] = true
	}
	return free, nil
}

// Lock acquires row locks on the given containers for the duration of
// the caller's transaction.
func (s *ContainerService) Lock(tx *gorm.DB, ids []uint) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	var locked []models.Container
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Find(&locked).Error
}

func (s *ContainerService) SetInUse(tx *gorm.DB, ids []uint, inUse bool) error {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&models.Container{}).
		Where("id IN ?", ids).
		Update("in_use", inUse).Error
}

type ContainerInput struct {
	ContainerCode   string  `json:"container_code"`
	ContainerTypeID *uint   `json:"container_type_id"`
	IsActive        *bool   `json:"is_active"`
	Note            *string `json:"note"`
}

func (s *ContainerService) Create(in ContainerInput) (uint, error) {
	code := strings.TrimSpace(in.ContainerCode)
	if code == "" {
		return 0, ErrInvalidCode
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	container := models.Container{
		ContainerCode:   code,
		ContainerTypeID: in.ContainerTypeID,
		IsActive:        active,
		Note:            optionalText(in.Note, 255),
	}
	if err := s.db.Create(&container).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicateContainerCode
		}
		return 0, err
	}
	return container.ID, nil
}

func (s *ContainerService) Update(id uint, in ContainerInput) error {
	var container models.Container
	if err := s.db.First(&container, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}

	updates := map[string]any{}
	if in.ContainerTypeID != nil {
		updates["container_type_id"] = in.ContainerTypeID
	}
	if in.Note != nil {
		updates["note"] = optionalText(in.Note, 255)
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&container).Updates(updates).Error
}

func refForID(id *uint) string {
	if id == nil {
		return ""
	}
	return formatUint(*id)
}
