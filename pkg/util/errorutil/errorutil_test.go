package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldErr struct{}

func (fieldErr) Error() string { return "bad field" }

func (fieldErr) ValidationDetails() map[string]any { return map[string]any{"title": "max"} }

type missingRow struct{ missing bool }

func (missingRow) Error() string { return "row missing" }

func (m missingRow) NotFound() bool { return m.missing }

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	t.Run("domain errors pass through wrapping", func(t *testing.T) {
		err := fmt.Errorf("update: %w", NewNotFound("feedback", map[string]any{"id": "x"}))
		de := ToDomainError(err)
		require.NotNil(t, de)
		assert.Equal(t, "NOT_FOUND", de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
		assert.Equal(t, "feedback not found", de.Message)
	})

	t.Run("validation details become a bad request", func(t *testing.T) {
		de := ToDomainError(fmt.Errorf("create: %w", fieldErr{}))
		assert.Equal(t, "VALIDATION_FAILED", de.Code)
		assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
		assert.Equal(t, "max", de.Details["title"])
	})

	t.Run("store not found errors map to not found", func(t *testing.T) {
		de := ToDomainError(fmt.Errorf("find: %w", missingRow{missing: true}))
		assert.Equal(t, "NOT_FOUND", de.Code)
		assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	})

	t.Run("not found reporter answering false stays internal", func(t *testing.T) {
		de := ToDomainError(missingRow{})
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	})

	t.Run("anything else is internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		de := ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", de.Code)
		assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
		assert.ErrorIs(t, de, cause)
	})
}
