package store

import (
	"errors"
	"fmt"
)

var (
	// ErrRoomNotFound means the room has never been saved with a drawing.
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidRoomID = errors.New("invalid room id")
	ErrInvalidScore  = errors.New("rating scores must be between 1 and 10")
)

// StorageError wraps a failed read or write against the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// asStorageErr wraps err unless it already carries a StorageError.
func asStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
