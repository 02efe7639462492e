package rest

import (
	"animeRecommender/domain"
	"errors"
	"fmt"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	msgInvalidRequest = "Invalid request"
	msgInternal       = "Internal server error"
)

// notFoundMessage points the client at the listing endpoint for the missing entity.
func notFoundMessage(err error) (string, bool) {
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		return "", false
	}

	switch nf.Entity {
	case domain.EntityUser:
		return fmt.Sprintf("User ID %d not found. Use /valid-users to get valid user IDs.", nf.ID), true
	case domain.EntityAnime:
		return fmt.Sprintf("Anime ID %d not found. Use /valid-anime to get valid anime IDs.", nf.ID), true
	default:
		return nf.Error(), true
	}
}
