package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Store error taxonomy. A classified error matches one of these with
// errors.Is; server errors outside the taxonomy, such as Unauthorized, and
// mongo.ErrNoDocuments are returned unwrapped.
var (
	ErrCollectionExists = errors.New("collection already exists")
	ErrConnection       = errors.New("store connection error")
	ErrValidation       = errors.New("store validation error")
	ErrNotFound         = errors.New("collection not found")
)

// MongoDB server error codes used for classification.
const (
	codeBadValue                  = 2
	codeNamespaceExists           = 48
	codeDocumentValidationFailure = 121
	codeDuplicateKey              = 11000
)

// classify wraps a driver error with the matching taxonomy sentinel.
// Server errors outside the taxonomy are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var se mongo.ServerError
	if errors.As(err, &se) && !mongo.IsNetworkError(err) {
		switch {
		case se.HasErrorCode(codeNamespaceExists):
			return fmt.Errorf("%w: %w", ErrCollectionExists, err)
		case mongo.IsDuplicateKeyError(err),
			se.HasErrorCode(codeDuplicateKey),
			se.HasErrorCode(codeDocumentValidationFailure),
			se.HasErrorCode(codeBadValue):
			return fmt.Errorf("%w: %w", ErrValidation, err)
		default:
			return err
		}
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if errors.Is(err, mongo.ErrNilDocument) || errors.Is(err, mongo.ErrEmptySlice) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	// Network errors, timeouts, server selection failures and a disconnected
	// client all land here.
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
