package database

import (
	"errors"

	"pizzeria/utils"
)

// Translate converts backend sentinels into the API error taxonomy.
func Translate(op, resource, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return utils.NewNotFoundError(resource, id)
	case errors.Is(err, ErrVersionConflict):
		return &utils.ConflictError{Resource: resource, ID: id}
	default:
		return utils.NewStorageError(op, err)
	}
}
