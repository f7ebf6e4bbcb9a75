package database

import (
	"fmt"

	"github.com/ZJUSCT/resolver/internal/database/models"
	"github.com/ZJUSCT/resolver/internal/resolver"
	"gorm.io/gorm"
)

const batchSize = 500

// SaveDataset replaces the stored contest with ds.
func SaveDataset(db *gorm.DB, ds resolver.Dataset) error {
	users := make([]models.User, 0, len(ds.Users))
	for _, u := range ds.Users {
		users = append(users, models.User{ID: u.ID, Username: u.Username, FullName: u.FullName})
	}
	problems := make([]models.Problem, 0, len(ds.Problems))
	for _, p := range ds.Problems {
		problems = append(problems, models.Problem{ID: p.ID, Name: p.Name, Points: p.Points})
	}
	submissions := make([]models.Submission, 0, len(ds.Submissions))
	for _, s := range ds.Submissions {
		submissions = append(submissions, models.Submission{
			ID:        s.ID,
			ProblemID: s.ProblemID,
			UserID:    s.UserID,
			Time:      s.Time,
			Points:    s.Points,
		})
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Submission{}, &models.Problem{}, &models.User{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		if len(users) > 0 {
			if err := tx.CreateInBatches(users, batchSize).Error; err != nil {
				return fmt.Errorf("insert users: %w", err)
			}
		}
		if len(problems) > 0 {
			if err := tx.CreateInBatches(problems, batchSize).Error; err != nil {
				return fmt.Errorf("insert problems: %w", err)
			}
		}
		if len(submissions) > 0 {
			if err := tx.CreateInBatches(submissions, batchSize).Error; err != nil {
				return fmt.Errorf("insert submissions: %w", err)
			}
		}
		return nil
	})
}

// LoadDataset reads the stored contest.
func LoadDataset(db *gorm.DB) (resolver.Dataset, error) {
	var users []models.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		return resolver.Dataset{}, fmt.Errorf("load users: %w", err)
	}
	var problems []models.Problem
	if err := db.Order("id").Find(&problems).Error; err != nil {
		return resolver.Dataset{}, fmt.Errorf("load problems: %w", err)
	}
	var submissions []models.Submission
	if err := db.Order("id").Find(&submissions).Error; err != nil {
		return resolver.Dataset{}, fmt.Errorf("load submissions: %w", err)
	}

	var ds resolver.Dataset
	for _, u := range users {
		ds.Users = append(ds.Users, resolver.User{ID: u.ID, Username: u.Username, FullName: u.FullName})
	}
	for _, p := range problems {
		ds.Problems = append(ds.Problems, resolver.Problem{ID: p.ID, Name: p.Name, Points: p.Points})
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
	return ds, nil
}

// Reveal event log
func CreateRevealEvent(db *gorm.DB, event *models.RevealEvent) error {
	return db.Create(event).Error
}

func GetRevealEvents(db *gorm.DB, sessionID string) ([]models.RevealEvent, error) {
	var events []models.RevealEvent
	if err := db.Where("session_id = ?", sessionID).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
