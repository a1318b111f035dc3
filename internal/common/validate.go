package common

import (
	"github.com/google/uuid"
)

// ValidateUUID parses a path or query parameter into a UUID.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	if idStr == "" {
		return uuid.Nil, Validationf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, Validationf("%s must be a valid UUID", fieldName)
	}
	return id, nil
}

// ValidatePaginationParams clamps limit/offset to sane bounds.
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString dereferences an optional string, returning "" for nil.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
