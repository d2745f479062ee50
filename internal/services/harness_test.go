package services

import (
	"context"
	"testing"
	"time"

	"jobportal/internal/config"
	"jobportal/internal/models"
	"jobportal/internal/repositories"
	"jobportal/internal/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

type testEnv struct {
	users  *fakeUserRepo
	jobs   *fakeJobRepo
	apps   *fakeApplicationRepo
	eng    *fakeEngagementRepo
	notifs *fakeNotificationRepo
	outbox *fakeOutboxRepo
	svcs   *Collection
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserRepo()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)
	eng := newFakeEngagementRepo(jobs)
	notifs := newFakeNotificationRepo()
	outbox := newFakeOutboxRepo()

	store, err := storage.NewDiskStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BCryptCost: bcrypt.MinCost,
		},
	}

	repos := &repositories.Collection{
		User:         users,
		Job:          jobs,
		Application:  apps,
		Engagement:   eng,
		Notification: notifs,
		Outbox:       outbox,
	}

	return &testEnv{
		users:  users,
		jobs:   jobs,
		apps:   apps,
		eng:    eng,
		notifs: notifs,
		outbox: outbox,
		svcs:   NewCollection(repos, store, cfg, zap.NewNop()),
	}
}

func (e *testEnv) seedUser(t *testing.T, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        username + "@example.com",
		Role:         role,
	}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) seedJob(t *testing.T, owner *models.User, title string) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:           title,
		Description:     "description of " + title,
		CompanyName:     "Acme",
		Location:        "Berlin",
		PostedDate:      time.Now(),
		CreatedByUserID: owner.ID,
	}
	require.NoError(t, e.jobs.Create(context.Background(), job))
	return job
}

func principalFor(u *models.User) *models.Principal {
	return &models.Principal{Username: u.Username, Role: u.Role, Email: u.Email}
}
