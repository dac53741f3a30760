package notification

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	n, err := NewNotification(3, "Ticket #12 was escalated", "ticket", 12)
	require.NoError(t, err)

	assert.Equal(t, uint(3), n.UserID())
	assert.Equal(t, "ticket", n.TargetType())
	assert.Equal(t, uint(12), n.TargetID())
	assert.False(t, n.IsRead())
}

func TestNewNotification_Validation(t *testing.T) {
	_, err := NewNotification(0, "hi", "", 0)
	assert.Error(t, err)

	_, err = NewNotification(1, "", "", 0)
	assert.Error(t, err)

	long, err := NewNotification(1, strings.Repeat("é", maxNotificationLength+50), "", 0)
	require.NoError(t, err)
	assert.Len(t, []rune(long.Message()), maxNotificationLength)
}
