package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"jobportal/internal/models"
	"jobportal/internal/repositories"
)

// In-memory repositories for service tests.

type fakeUserRepo struct {
	seq   int64
	users map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	f.seq++
	user.ID = f.seq
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hash string) error {
	f.users[id].PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeJobRepo struct {
	seq  int64
	jobs map[int64]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[int64]*models.Job)}
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) error {
	f.seq++
	job.ID = f.seq
	job.CreatedAt = time.Now()
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, id int64) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeJobRepo) GetAndIncrementView(_ context.Context, id int64) (*models.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	j.ViewCount++
	cp := *j
	return &cp, nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *models.Job) error {
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobRepo) Delete(_ context.Context, id int64) error {
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobRepo) List(_ context.Context) ([]*models.Job, error) {
	return f.sorted(), nil
}

func (f *fakeJobRepo) ListByOwner(_ context.Context, ownerID int64) ([]*models.Job, error) {
	var out []*models.Job
	for _, j := range f.sorted() {
		if j.CreatedByUserID == ownerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Search(_ context.Context, filter *models.JobFilter) ([]*models.Job, error) {
	var out []*models.Job
	for _, j := range f.sorted() {
		if matches(j, filter) {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) Paginate(_ context.Context, pageNumber, pageSize int) ([]*models.Job, error) {
	all := f.sorted()
	start := (pageNumber - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (f *fakeJobRepo) IncrementApplicationCount(_ context.Context, id int64) error {
	f.jobs[id].ApplicationCount++
	return nil
}

func (f *fakeJobRepo) AddFavoriteCount(_ context.Context, id int64, delta int) error {
	j := f.jobs[id]
	j.FavoriteCount += delta
	if j.FavoriteCount < 0 {
		j.FavoriteCount = 0
	}
	return nil
}

func (f *fakeJobRepo) sorted() []*models.Job {
	out := make([]*models.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(j *models.Job, f *models.JobFilter) bool {
	contains := func(hay string, needle *string) bool {
		return needle == nil || strings.Contains(strings.ToLower(hay), strings.ToLower(*needle))
	}
	inRange := func(v int, min, max *int) bool {
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
	return contains(j.Title, f.Title) &&
		contains(j.CompanyName, f.CompanyName) &&
		contains(j.Location, f.Location) &&
		inRange(j.ApplicationCount, f.MinApplicationCount, f.MaxApplicationCount) &&
		inRange(j.FavoriteCount, f.MinFavoriteCount, f.MaxFavoriteCount) &&
		inRange(j.ViewCount, f.MinViewCount, f.MaxViewCount)
}

type fakeApplicationRepo struct {
	seq  int64
	apps map[int64]*models.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[int64]*models.Application), jobs: jobs}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) error {
	f.seq++
	app.ID = f.seq
	app.CreatedAt = time.Now()
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id int64) (*models.Application, error) {
	if a, ok := f.apps[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	f.apps[id].Status = status
	return nil
}

func (f *fakeApplicationRepo) ListByApplicant(_ context.Context, username string) ([]*models.ApplicationSummary, error) {
	var out []*models.ApplicationSummary
	for _, a := range f.sorted() {
		if a.ApplicantUsername != username {
			continue
		}
		title := ""
		if j, ok := f.jobs.jobs[a.JobID]; ok {
			title = j.Title
		}
		out = append(out, &models.ApplicationSummary{
			ID:                a.ID,
			Status:            a.Status,
			CreatedAt:         a.CreatedAt,
			JobTitle:          title,
			ApplicantUsername: a.ApplicantUsername,
			JobID:             a.JobID,
		})
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByJobIDs(_ context.Context, jobIDs []int64) ([]*models.Application, error) {
	ids := make(map[int64]bool, len(jobIDs))
	for _, id := range jobIDs {
		ids[id] = true
	}
	var out []*models.Application
	for _, a := range f.sorted() {
		if ids[a.JobID] {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) List(_ context.Context) ([]*models.Application, error) {
	return f.sorted(), nil
}

func (f *fakeApplicationRepo) sorted() []*models.Application {
	out := make([]*models.Application, 0, len(f.apps))
	for _, a := range f.apps {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeEngagementRepo struct {
	favSeq     int64
	commentSeq int64
	favorites  map[int64]*models.Favorite
	comments   map[int64]*models.Comment
	jobs       *fakeJobRepo
}

func newFakeEngagementRepo(jobs *fakeJobRepo) *fakeEngagementRepo {
	return &fakeEngagementRepo{
		favorites: make(map[int64]*models.Favorite),
		comments:  make(map[int64]*models.Comment),
		jobs:      jobs,
	}
}

func (f *fakeEngagementRepo) AddFavorite(_ context.Context, fav *models.Favorite) error {
	for _, existing := range f.favorites {
		if existing.Username == fav.Username && existing.JobID == fav.JobID {
			return repositories.ErrDuplicate
		}
	}
	f.favSeq++
	fav.ID = f.favSeq
	cp := *fav
	f.favorites[fav.ID] = &cp
	return nil
}

func (f *fakeEngagementRepo) GetFavorite(_ context.Context, username string, jobID int64) (*models.Favorite, error) {
	for _, fav := range f.favorites {
		if fav.Username == username && fav.JobID == jobID {
			cp := *fav
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEngagementRepo) DeleteFavorite(_ context.Context, id int64) error {
	delete(f.favorites, id)
	return nil
}

func (f *fakeEngagementRepo) ListFavoriteJobs(_ context.Context, username string) ([]*models.Job, error) {
	var out []*models.Job
	for _, fav := range f.favorites {
		if fav.Username != username {
			continue
		}
		if j, ok := f.jobs.jobs[fav.JobID]; ok {
			cp := *j
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEngagementRepo) AddComment(_ context.Context, comment *models.Comment) error {
	f.commentSeq++
	comment.ID = f.commentSeq
	comment.CreatedAt = time.Now()
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeEngagementRepo) GetComment(_ context.Context, id int64) (*models.Comment, error) {
	if c, ok := f.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeEngagementRepo) ListComments(_ context.Context, jobID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range f.comments {
		if c.JobID == jobID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeEngagementRepo) DeleteComment(_ context.Context, id int64) error {
	delete(f.comments, id)
	return nil
}

type fakeNotificationRepo struct {
	seq           int64
	notifications map[int64]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[int64]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	f.seq++
	n.ID = f.seq
	n.CreatedAt = time.Now()
	cp := *n
	f.notifications[n.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	if n, ok := f.notifications[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID int64, unreadOnly bool) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	f.notifications[id].IsRead = true
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

type fakeOutboxRepo struct {
	seq      int64
	messages []*models.EmailMessage
}

func newFakeOutboxRepo() *fakeOutboxRepo {
	return &fakeOutboxRepo{}
}

func (f *fakeOutboxRepo) Enqueue(_ context.Context, msg *models.EmailMessage) error {
	f.seq++
	msg.ID = f.seq
	msg.CreatedAt = time.Now()
	cp := *msg
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeOutboxRepo) NextPending(_ context.Context, limit int) ([]*models.EmailMessage, error) {
	var out []*models.EmailMessage
	for _, m := range f.messages {
		if m.SentAt == nil && len(out) < limit {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) MarkSent(_ context.Context, id int64) error {
	for _, m := range f.messages {
		if m.ID == id {
			now := time.Now()
			m.SentAt = &now
			m.Attempts++
		}
	}
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(_ context.Context, id int64, deliveryErr string) error {
	for _, m := range f.messages {
		if m.ID == id {
			m.Attempts++
			m.LastError = deliveryErr
		}
	}
	return nil
}
