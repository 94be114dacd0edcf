package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkaraca/courseflow/internal/app/models"
)

func TestValidateCreditLimit(t *testing.T) {
	sem := &models.Semester{MaxCredits: 18}

	assert.True(t, ValidateCreditLimit(sem, 0, 18))
	assert.True(t, ValidateCreditLimit(sem, 15, 3))
	assert.False(t, ValidateCreditLimit(sem, 15, 4))
	assert.False(t, ValidateCreditLimit(sem, 18, 1))
}

func TestValidateCreditLimit_NoCeilingMeansNoLimit(t *testing.T) {
	sem := &models.Semester{MaxCredits: 0}

	assert.True(t, ValidateCreditLimit(sem, 100, 100))
}
