package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/beesaferoot/unilets/internal/models"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, models.RoleAdmin.Valid())
	assert.True(t, models.RoleAgent.Valid())
	assert.True(t, models.RoleUser.Valid())
	assert.False(t, models.Role("owner").Valid())
}
