package database

import (
	"context"
	"fmt"

	"github.com/ZJUSCT/resolver/internal/resolver"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Statuses of DMOJ submissions that count as judged attempts. Compile
// errors and internal errors are left out.
var dmojJudgedResults = []string{"AC", "WA", "RTE", "TLE", "MLE", "OLE"}

const (
	dmojUsersQuery = `
SELECT p.id AS id, u.username AS username, u.first_name AS full_name
FROM auth_user u
JOIN judge_profile p ON p.user_id = u.id
JOIN judge_contestparticipation cp ON p.id = cp.user_id
WHERE cp.virtual = 0 AND cp.contest_id = ?`

	dmojProblemsQuery = `
SELECT p.id AS id, p.name AS name, cp.points AS points
FROM judge_problem p
JOIN judge_contestproblem cp ON p.id = cp.problem_id
WHERE cp.contest_id = ?`

	dmojSubmissionsQuery = `
SELECT cs.submission_id AS id,
       s.problem_id AS problem_id,
       s.user_id AS user_id,
       TIME_TO_SEC(TIMEDIFF(s.date, c.start_time)) AS time,
       cs.points AS points
FROM judge_contestsubmission cs
INNER JOIN judge_submission s ON cs.submission_id = s.id
INNER JOIN judge_contestparticipation cp ON cs.participation_id = cp.id
INNER JOIN judge_contest c ON cp.contest_id = c.id
WHERE cp.virtual = 0 AND c.id = ? AND s.result IN ?`
)

// OpenDMOJ connects to the MySQL database of a DMOJ site.
func OpenDMOJ(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to dmoj database: %w", err)
	}
	return db, nil
}

// ExportDMOJContest reads the official participants, problems and judged
// submissions of a DMOJ contest. Submission times are seconds since the
// contest start.
func ExportDMOJContest(ctx context.Context, db *gorm.DB, contestID int64) (resolver.Dataset, error) {
	db = db.WithContext(ctx)

	var ds resolver.Dataset
	var users []struct {
		ID       int64
		Username string
		FullName string
	}
	if err := db.Raw(dmojUsersQuery, contestID).Scan(&users).Error; err != nil {
		return ds, fmt.Errorf("query dmoj users: %w", err)
	}
	for _, u := range users {
		ds.Users = append(ds.Users, resolver.User{ID: u.ID, Username: u.Username, FullName: u.FullName})
	}

	var problems []struct {
		ID     int64
		Name   string
		Points float64
	}
	if err := db.Raw(dmojProblemsQuery, contestID).Scan(&problems).Error; err != nil {
		return ds, fmt.Errorf("query dmoj problems: %w", err)
	}
	for _, p := range problems {
		ds.Problems = append(ds.Problems, resolver.Problem{ID: p.ID, Name: p.Name, Points: p.Points})
	}

	var submissions []struct {
		ID        int64
		ProblemID int64
		UserID    int64
		Time      float64
		Points    float64
	}
	if err := db.Raw(dmojSubmissionsQuery, contestID, dmojJudgedResults).Scan(&submissions).Error; err != nil {
		return ds, fmt.Errorf("query dmoj submissions: %w", err)
	}
	for _, s := range submissions {
		ds.Submissions = append(ds.Submissions, resolver.Submission{
			ID:        s.ID,
			ProblemID: s.ProblemID,
			UserID:    s.UserID,
			Time:      s.Time,
			Points:    s.Points,
		})
	}

	zap.S().Infof("exported dmoj contest %d: %d users, %d problems, %d submissions",
		contestID, len(ds.Users), len(ds.Problems), len(ds.Submissions))
	return ds, nil
}
