package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/punkyalice/Foodprep/models"
)

type ContainerRefKind int

const (
	RefFreezerBag ContainerRefKind = iota
	RefVacuumBag
	RefContainer
)

// ContainerRef is a box's container reference, resolved once at the
// JSON boundary: either a real container id or one of the disposable
// bag kinds. Accepted wire forms: a number, a numeric string, the
// tokens FREEZER_BAG / VACUUM_BAG, the legacy sentinels -1 / -2, or
// null (freezer bag).
type ContainerRef struct {
	Kind ContainerRefKind
	ID   uint // valid only when Kind == RefContainer
}

func (r *ContainerRef) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*r = ContainerRef{Kind: RefFreezerBag}
		return nil
	}

	var token string
	if raw[0] == '"' {
		if err := json.Unmarshal(data, &token); err != nil {
			return err
		}
	} else {
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		token = strconv.FormatInt(int64(n), 10)
	}

	switch strings.ToUpper(strings.TrimSpace(token)) {
	case models.StorageFreezerBag, "-1":
		*r = ContainerRef{Kind: RefFreezerBag}
	case models.StorageVacuumBag, "-2":
		*r = ContainerRef{Kind: RefVacuumBag}
	default:
		id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil {
			// unknown token: treated as a nonexistent container so
			// packing fails with container_not_available, not a parse error
			*r = ContainerRef{Kind: RefContainer}
			return nil
		}
		*r = ContainerRef{Kind: RefContainer, ID: uint(id)}
	}
	return nil
}

// IsBag reports whether the reference is a disposable bag.
func (r ContainerRef) IsBag() bool {
	return r.Kind != RefContainer
}

// StorageType maps the reference to the inventory storage type of the
// item packed into it.
func (r ContainerRef) StorageType() string {
	switch r.Kind {
	case RefVacuumBag:
		return models.StorageVacuumBag
	case RefFreezerBag:
		return models.StorageFreezerBag
	default:
		return models.StorageBox
	}
}
