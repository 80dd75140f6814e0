package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert order: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(errors.New("x")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%2506%", likePattern("2506"))
	assert.Equal(t, `%50\%\_a\\%`, likePattern(`50%_a\`))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", *nullIfEmpty("x"))
	assert.Equal(t, "", derefString(nil))
	assert.Equal(t, []string{}, emptyIfNil(nil))
}

func TestFirstIPv4_Literales(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "127.0.0.1", firstIPv4(ctx, "127.0.0.1"))
	assert.Equal(t, "", firstIPv4(ctx, "::1"))
}
