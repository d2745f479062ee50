package services

import (
	"context"
	"testing"

	"jobportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationListAndUnreadCount(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", models.RoleEmployee)

	require.NoError(t, env.svcs.Notification.Notify(context.Background(), user.ID, "first"))
	require.NoError(t, env.svcs.Notification.Notify(context.Background(), user.ID, "second"))

	list, err := env.svcs.Notification.List(context.Background(), principalFor(user), false)
	require.NoError(t, err)
	assert.Len(t, list.Notifications, 2)
	assert.Equal(t, 2, list.UnreadCount)

	// Newest first.
	assert.Equal(t, "second", list.Notifications[0].Message)
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", models.RoleEmployee)

	require.NoError(t, env.svcs.Notification.Notify(context.Background(), user.ID, "hello"))

	require.NoError(t, env.svcs.Notification.MarkAllRead(context.Background(), principalFor(user)))
	require.NoError(t, env.svcs.Notification.MarkAllRead(context.Background(), principalFor(user)))

	list, err := env.svcs.Notification.List(context.Background(), principalFor(user), true)
	require.NoError(t, err)
	assert.Empty(t, list.Notifications)
	assert.Equal(t, 0, list.UnreadCount)
}

func TestMarkReadForeignNotificationNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "alice", models.RoleEmployee)
	bob := env.seedUser(t, "bob", models.RoleEmployee)

	require.NoError(t, env.svcs.Notification.Notify(context.Background(), alice.ID, "for alice"))

	err := env.svcs.Notification.MarkRead(context.Background(), principalFor(bob), 1)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestMarkReadTwiceIsNoError(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", models.RoleEmployee)

	require.NoError(t, env.svcs.Notification.Notify(context.Background(), user.ID, "hello"))
	require.NoError(t, env.svcs.Notification.MarkRead(context.Background(), principalFor(user), 1))
	require.NoError(t, env.svcs.Notification.MarkRead(context.Background(), principalFor(user), 1))
}
