package models

import "time"

// User, Problem and Submission mirror the dataset exported from a judge.
// Their ids come from the source system and are never generated here.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	Username string `gorm:"uniqueIndex" json:"username"`
	FullName string `json:"fullName"`
}

type Problem struct {
	ID     int64   `gorm:"primaryKey;autoIncrement:false" json:"problemId"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type Submission struct {
	ID        int64   `gorm:"primaryKey;autoIncrement:false" json:"submissionId"`
	ProblemID int64   `gorm:"index" json:"problemId"`
	UserID    int64   `gorm:"index" json:"userId"`
	Time      float64 `json:"time"`
	Points    float64 `json:"points"`
}

// RevealEvent is one line of the ceremony audit log.
type RevealEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID    string `gorm:"index" json:"session_id"`
	Seq          int    `json:"seq"`
	Action       string `json:"action"`
	UserID       int64  `json:"user_id"`
	ProblemID    int64  `json:"problem_id"`
	SubmissionID int64  `json:"submission_id"`
}
