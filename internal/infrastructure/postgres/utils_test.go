package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("create alert: %w", unique)),
		"debe detectar la violación aunque venga envuelta")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}), "otra constraint no es 23505")
	assert.False(t, isUniqueViolation(errors.New("23505")), "un error genérico no cuenta")
}
