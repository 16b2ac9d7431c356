package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("Game", 42)
	assert.Equal(t, "Game not found with id: 42", err.Error())
}

func TestNotFoundfMessage(t *testing.T) {
	err := NotFoundf("Platform", "ps5")
	assert.Equal(t, "Platform not found: ps5", err.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("Order", 7)))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", NotFoundf("Genre", "rpg"))))
	assert.False(t, IsNotFound(errors.New("connection refused")))
	assert.False(t, IsNotFound(nil))
}
