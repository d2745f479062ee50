package models

import "time"

// Job is a posted opening. The three counters are maintained by the
// workflow with atomic increments at the storage layer and never go
// negative.
type Job struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CompanyName      string    `json:"company_name"`
	Location         string    `json:"location"`
	PostedDate       time.Time `json:"posted_date"`
	CreatedByUserID  int64     `json:"created_by_user_id"`
	ApplicationCount int       `json:"application_count"`
	FavoriteCount    int       `json:"favorite_count"`
	ViewCount        int       `json:"view_count"`
	CreatedAt        time.Time `json:"created_at"`
}

// JobFilter holds the conjunctive search predicates. Nil fields are not
// applied; string matches are case-insensitive substrings, numeric
// bounds are inclusive.
type JobFilter struct {
	Title               *string
	CompanyName         *string
	Location            *string
	MinApplicationCount *int
	MaxApplicationCount *int
	MinFavoriteCount    *int
	MaxFavoriteCount    *int
	MinViewCount        *int
	MaxViewCount        *int
}

// Empty reports whether no predicate is set.
func (f *JobFilter) Empty() bool {
	return f.Title == nil && f.CompanyName == nil && f.Location == nil &&
		f.MinApplicationCount == nil && f.MaxApplicationCount == nil &&
		f.MinFavoriteCount == nil && f.MaxFavoriteCount == nil &&
		f.MinViewCount == nil && f.MaxViewCount == nil
}

// JobStatistics is the counters snapshot exposed to the job owner.
type JobStatistics struct {
	JobID            int64  `json:"job_id"`
	JobTitle         string `json:"job_title"`
	ApplicationCount int    `json:"application_count"`
	FavoriteCount    int    `json:"favorite_count"`
	ViewCount        int    `json:"view_count"`
}
