package models

import "time"

// Favorite marks a job saved by a user. One row per (username, job)
// pair, enforced by a unique index.
type Favorite struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	JobID    int64  `json:"job_id"`
}

// Comment is a public remark on a job posting.
type Comment struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	JobID     int64     `json:"job_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
