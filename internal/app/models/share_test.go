package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleShare_IsExpired(t *testing.T) {
	now := time.Now()

	noExpiry := &ScheduleShare{}
	assert.False(t, noExpiry.IsExpired(now))

	past := now.Add(-time.Minute)
	expired := &ScheduleShare{ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))

	future := now.Add(time.Minute)
	active := &ScheduleShare{ExpiresAt: &future}
	assert.False(t, active.IsExpired(now))
}

func TestShareValidation_HasNoTokenField(t *testing.T) {
	validation := ShareValidation{
		OwnerID:         1,
		PermissionLevel: PermissionEdit,
	}

	data, err := json.Marshal(validation)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "shareToken")
	assert.NotContains(t, string(data), "share_token")
}

func TestPermissionLevel_Valid(t *testing.T) {
	assert.True(t, PermissionView.Valid())
	assert.True(t, PermissionEdit.Valid())
	assert.False(t, PermissionLevel("admin").Valid())
	assert.False(t, PermissionLevel("").Valid())
}
