package services

import (
	"context"
	"testing"

	"jobportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddAndRemoveMoveCounter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	fan := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	require.NoError(t, env.svcs.Engagement.AddFavorite(context.Background(), principalFor(fan), job.ID))

	stored, err := env.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FavoriteCount)

	require.NoError(t, env.svcs.Engagement.RemoveFavorite(context.Background(), principalFor(fan), job.ID))

	stored, err = env.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FavoriteCount)
}

func TestFavoriteDuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	fan := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	require.NoError(t, env.svcs.Engagement.AddFavorite(context.Background(), principalFor(fan), job.ID))

	err := env.svcs.Engagement.AddFavorite(context.Background(), principalFor(fan), job.ID)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))

	stored, getErr := env.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 1, stored.FavoriteCount)
}

func TestRemoveFavoriteMissingNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	fan := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	err := env.svcs.Engagement.RemoveFavorite(context.Background(), principalFor(fan), job.ID)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestListFavoritesReturnsSavedJobs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	fan := env.seedUser(t, "alice", models.RoleEmployee)
	saved := env.seedJob(t, owner, "Backend Engineer")
	env.seedJob(t, owner, "Frontend Engineer")

	require.NoError(t, env.svcs.Engagement.AddFavorite(context.Background(), principalFor(fan), saved.ID))

	jobs, err := env.svcs.Engagement.ListFavorites(context.Background(), principalFor(fan))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, saved.ID, jobs[0].ID)
}

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	commenter := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	comment, err := env.svcs.Engagement.AddComment(context.Background(), principalFor(commenter), &AddCommentRequest{
		JobID:   job.ID,
		Content: "interesting role",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", comment.Username)

	comments, err := env.svcs.Engagement.ListComments(context.Background(), job.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	require.NoError(t, env.svcs.Engagement.DeleteComment(context.Background(), principalFor(commenter), comment.ID))

	comments, err = env.svcs.Engagement.ListComments(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteCommentPolicy(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	author := env.seedUser(t, "alice", models.RoleEmployee)
	stranger := env.seedUser(t, "carol", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	comment, err := env.svcs.Engagement.AddComment(context.Background(), principalFor(author), &AddCommentRequest{
		JobID:   job.ID,
		Content: "interesting role",
	})
	require.NoError(t, err)

	// Another employee may not delete someone else's comment.
	err = env.svcs.Engagement.DeleteComment(context.Background(), principalFor(stranger), comment.ID)
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))

	// Any employer may moderate comments.
	require.NoError(t, env.svcs.Engagement.DeleteComment(context.Background(), principalFor(owner), comment.ID))
}

func TestAddCommentMissingJobNotFound(t *testing.T) {
	env := newTestEnv(t)
	commenter := env.seedUser(t, "alice", models.RoleEmployee)

	_, err := env.svcs.Engagement.AddComment(context.Background(), principalFor(commenter), &AddCommentRequest{
		JobID:   77,
		Content: "hello",
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
