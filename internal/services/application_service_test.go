package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"jobportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCreatesPendingApplicationAndCounts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "alice", app.ApplicantUsername)
	assert.Equal(t, "alice@example.com", app.ApplicantEmail)

	stored, err := env.jobs.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ApplicationCount)

	// Two mails: one to the owner, one to the applicant.
	require.Len(t, env.outbox.messages, 2)
	recipients := []string{env.outbox.messages[0].Recipient, env.outbox.messages[1].Recipient}
	assert.Contains(t, recipients, "boss@example.com")
	assert.Contains(t, recipients, "alice@example.com")

	// Owner gets an in-app notification.
	notifs, err := env.notifs.ListByUser(context.Background(), owner.ID, true)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, "alice")
}

func TestApplyMissingJobNotFound(t *testing.T) {
	env := newTestEnv(t)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)

	_, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: 99})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestApplyStoresCVAndDownloadRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	admin := env.seedUser(t, "root", models.RoleAdmin)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{
		JobID: job.ID,
		CV:    &CVUpload{FileName: "cv.pdf", Content: strings.NewReader("my resume")},
	})
	require.NoError(t, err)
	assert.Equal(t, "cv.pdf", app.CVFileName)
	assert.NotEmpty(t, app.CVFilePath)
	assert.NotEqual(t, "cv.pdf", app.CVFilePath)

	download, err := env.svcs.Application.DownloadCV(context.Background(), principalFor(admin), app.ID)
	require.NoError(t, err)
	defer download.Content.Close()

	body, err := io.ReadAll(download.Content)
	require.NoError(t, err)
	assert.Equal(t, "my resume", string(body))
	assert.Equal(t, "cv.pdf", download.FileName)
	assert.Equal(t, "application/octet-stream", download.ContentType)
}

func TestDownloadCVGating(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	other := env.seedUser(t, "rival", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{
		JobID: job.ID,
		CV:    &CVUpload{FileName: "cv.pdf", Content: strings.NewReader("my resume")},
	})
	require.NoError(t, err)

	// Employer who does not own the parent job is rejected.
	_, err = env.svcs.Application.DownloadCV(context.Background(), principalFor(other), app.ID)
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))

	// The owning employer may download.
	download, err := env.svcs.Application.DownloadCV(context.Background(), principalFor(owner), app.ID)
	require.NoError(t, err)
	download.Content.Close()
}

func TestDownloadCVWithoutAttachmentNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = env.svcs.Application.DownloadCV(context.Background(), principalFor(owner), app.ID)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdateStatusAllowListAndNotification(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = env.svcs.Application.UpdateStatus(context.Background(), principalFor(owner), &UpdateApplicationStatusRequest{
		JobID:         job.ID,
		ApplicationID: app.ID,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = env.svcs.Application.UpdateStatus(context.Background(), principalFor(owner), &UpdateApplicationStatusRequest{
		JobID:         job.ID,
		ApplicationID: app.ID,
		Status:        "Shortlisted",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	updated, err := env.svcs.Application.UpdateStatus(context.Background(), principalFor(owner), &UpdateApplicationStatusRequest{
		JobID:         job.ID,
		ApplicationID: app.ID,
		Status:        models.StatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	notifs, err := env.notifs.ListByUser(context.Background(), applicant.ID, true)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Contains(t, notifs[0].Message, models.StatusAccepted)
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	other := env.seedUser(t, "rival", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = env.svcs.Application.UpdateStatus(context.Background(), principalFor(other), &UpdateApplicationStatusRequest{
		JobID:         job.ID,
		ApplicationID: app.ID,
		Status:        models.StatusRejected,
	})
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))
}

func TestUpdateStatusMismatchedJobNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")
	otherJob := env.seedJob(t, owner, "Frontend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	_, err = env.svcs.Application.UpdateStatus(context.Background(), principalFor(owner), &UpdateApplicationStatusRequest{
		JobID:         otherJob.ID,
		ApplicationID: app.ID,
		Status:        models.StatusAccepted,
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdateStatusMissingApplicantIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	app, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	require.NoError(t, env.users.Delete(context.Background(), applicant.ID))

	_, err = env.svcs.Application.UpdateStatus(context.Background(), principalFor(owner), &UpdateApplicationStatusRequest{
		JobID:         job.ID,
		ApplicationID: app.ID,
		Status:        models.StatusAccepted,
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestListForApplicantJoinsJobTitle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	job := env.seedJob(t, owner, "Backend Engineer")

	_, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: job.ID})
	require.NoError(t, err)

	summaries, err := env.svcs.Application.ListForApplicant(context.Background(), principalFor(applicant))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Backend Engineer", summaries[0].JobTitle)
	assert.Equal(t, models.StatusPending, summaries[0].Status)
}

func TestListForEmployerCoversOnlyOwnJobs(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "boss", models.RoleEmployer)
	other := env.seedUser(t, "rival", models.RoleEmployer)
	applicant := env.seedUser(t, "alice", models.RoleEmployee)
	mine := env.seedJob(t, owner, "Backend Engineer")
	theirs := env.seedJob(t, other, "Frontend Engineer")

	_, err := env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: mine.ID})
	require.NoError(t, err)
	_, err = env.svcs.Application.Apply(context.Background(), principalFor(applicant), &ApplyRequest{JobID: theirs.ID})
	require.NoError(t, err)

	apps, err := env.svcs.Application.ListForEmployer(context.Background(), principalFor(owner))
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, mine.ID, apps[0].JobID)
}
