package models

import "time"

// Application statuses. Transitions are driven by the job owner (or an
// admin); any status outside this set is rejected.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
)

// ValidStatus reports whether status belongs to the allow-list.
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusAccepted || status == StatusRejected
}

// Application records one apply call against a job. ApplicantUsername
// and ApplicantEmail are snapshots taken at apply time; later profile
// changes do not rewrite history.
type Application struct {
	ID                int64     `json:"id"`
	JobID             int64     `json:"job_id"`
	ApplicantUsername string    `json:"applicant_username"`
	ApplicantEmail    string    `json:"applicant_email"`
	Status            string    `json:"status"`
	CVFileName        string    `json:"cv_file_name"`
	CVFilePath        string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// ApplicationSummary is the applicant-facing projection joining in the
// job title.
type ApplicationSummary struct {
	ID                int64     `json:"id"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	JobTitle          string    `json:"job_title"`
	ApplicantUsername string    `json:"applicant_username"`
	JobID             int64     `json:"job_id"`
}
