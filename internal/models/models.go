package models

import "time"

// Quest is one server-tracked mission as the API returns it. Quests are
// ephemeral: fetched, worked through, and discarded within a single pass.
type Quest struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	IsDone bool   `json:"is_done"`
}

// PassResult summarizes one account's pass through the workflow.
type PassResult struct {
	ID              int64
	RunID           string
	Project         string
	Username        string
	LoginOK         bool
	QuestsTotal     int
	QuestsCompleted int
	ReferralClaimed bool
	Points          float64
	CreatedAt       time.Time
}

// Run is one full scheduler cycle across all eligible projects.
type Run struct {
	ID        string
	Cycle     int
	StartedAt time.Time
	EndedAt   time.Time
}
