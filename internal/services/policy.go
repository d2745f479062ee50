package services

import "jobportal/internal/models"

// Operations gated by role. The router's auth middleware checks this
// table before a handler runs; ownership checks happen afterwards in
// the owning service.
const (
	OpCreateJob         = "jobs.create"
	OpUpdateJob         = "jobs.update"
	OpDeleteJob         = "jobs.delete"
	OpJobStatistics     = "jobs.statistics"
	OpApply             = "applications.apply"
	OpUpdateAppStatus   = "applications.update_status"
	OpDownloadCVAdmin   = "applications.download_cv.admin"
	OpDownloadCVOwner   = "applications.download_cv.employer"
	OpEmployerListings  = "applications.list_for_employer"
	OpFavorite          = "engagement.favorite"
	OpComment           = "engagement.comment"
	OpDeleteComment     = "engagement.delete_comment"
	OpUserProfile       = "user.profile"
	OpNotifications     = "notifications.read"
	OpAdmin             = "admin"
)

var policy = map[string][]string{
	OpCreateJob:        {models.RoleEmployer, models.RoleAdmin},
	OpUpdateJob:        {models.RoleEmployer, models.RoleAdmin},
	OpDeleteJob:        {models.RoleEmployer, models.RoleAdmin},
	OpJobStatistics:    {models.RoleEmployer, models.RoleAdmin},
	OpApply:            {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpUpdateAppStatus:  {models.RoleEmployer, models.RoleAdmin},
	OpDownloadCVAdmin:  {models.RoleAdmin},
	OpDownloadCVOwner:  {models.RoleEmployer, models.RoleAdmin},
	OpEmployerListings: {models.RoleEmployer, models.RoleAdmin},
	OpFavorite:         {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpComment:          {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpDeleteComment:    {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpUserProfile:      {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpNotifications:    {models.RoleEmployee, models.RoleEmployer, models.RoleAdmin},
	OpAdmin:            {models.RoleAdmin},
}

// Allow reports whether role may perform op. Unknown operations are
// denied.
func Allow(op, role string) bool {
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// isAdmin reports whether the caller holds the Admin role.
func isAdmin(p *models.Principal) bool {
	return p != nil && p.Role == models.RoleAdmin
}

// ownsJob reports whether caller (the resolved account of the
// principal) created the job. Admin bypasses ownership everywhere this
// predicate is used.
func ownsJob(caller *models.User, job *models.Job) bool {
	return caller != nil && job != nil && caller.ID == job.CreatedByUserID
}
