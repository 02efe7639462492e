package domain

import (
	"errors"
	"fmt"
)

const (
	EntityUser  = "user"
	EntityAnime = "anime"
)

// ErrDimensionMismatch means two artifacts disagree on embedding width.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id int) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ArtifactError reports a table that could not be loaded or failed validation.
type ArtifactError struct {
	Artifact string
	Err      error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %s: %v", e.Artifact, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}
