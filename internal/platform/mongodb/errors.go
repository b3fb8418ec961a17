package mongodb

import (
	"errors"
	"fmt"

	"github.com/phrazzld/shop-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError converts driver errors into store sentinels. notFound is returned
// for mongo.ErrNoDocuments; duplicate is wrapped around duplicate-key errors.
// A nil sentinel falls back to the generic store error.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if notFound == nil {
		notFound = store.ErrNotFound
	}
	if duplicate == nil {
		duplicate = store.ErrDuplicate
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", duplicate, err)
	}
	return err
}
