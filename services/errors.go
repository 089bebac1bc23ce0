package services

import "errors"

// Service errors carry the wire error code as their message.
// Controllers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound               = errors.New("not_found")
	ErrMissingField           = errors.New("missing_field")
	ErrMissingName            = errors.New("missing_name")
	ErrMissingComponents      = errors.New("missing_components")
	ErrMissingBoxes           = errors.New("missing_boxes")
	ErrInvalidComponent       = errors.New("invalid_component")
	ErrDuplicateContainer     = errors.New("duplicate_container")
	ErrPortionMissing         = errors.New("portion_missing")
	ErrContainerNotAvailable  = errors.New("container_not_available")
	ErrInvalidStatus          = errors.New("invalid_status")
	ErrInvalidStorageType     = errors.New("invalid_storage_type")
	ErrInvalidCode            = errors.New("invalid_code")
	ErrDuplicateContainerCode = errors.New("duplicate_container_code")
	ErrCounterMissing         = errors.New("counter_missing")
	ErrNoItemsAvailable       = errors.New("no_items_available")
	ErrNoItemsSelected        = errors.New("no_items_selected")
)
