package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kishor-04/JourneySphere---Travel-Agency-Platform/internal/domain"
)

const pqUniqueViolation = "23505"

// TranslateError maps driver errors onto the store sentinels in domain.
// Errors that need no translation are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", domain.ErrRecordNotFound, err)
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateKey, err)
	}
	return err
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	// sqlite reports constraint failures only through the message text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
