package services

import (
	"context"
	"math"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// ProgressUpdate carries the optional fields of a progress write. Nil means "leave as is".
type ProgressUpdate struct {
	Progress  *float64
	Completed *bool
}

type EnrollmentService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db, Now: time.Now}
}

// ClampProgress constrains p to [0, 100].
func ClampProgress(p float64) float64 {
	return math.Min(100, math.Max(0, p))
}

// Enroll creates the (student, course) enrollment and bumps the course's
// enrolled count in one transaction. A second enroll for the same pair hits
// the unique index and returns a Conflict.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uint) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: s.Now(),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Select("id").First(&course, courseID).Error; err != nil {
			if utils.IsNotFound(err) {
				return utils.NotFoundError("Course not found")
			}
			return utils.InternalError("Error enrolling in course", err)
		}

		if err := tx.Create(&enrollment).Error; err != nil {
			if utils.IsDuplicateKey(err) {
				return utils.ConflictError("Already enrolled in this course")
			}
			return utils.InternalError("Error enrolling in course", err)
		}

		res := tx.Model(&models.Course{}).
			Where("id = ?", courseID).
			UpdateColumn("enrolled_count", gorm.Expr("enrolled_count + ?", 1))
		if res.Error != nil {
			return utils.InternalError("Error enrolling in course", res.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Preload("Course.Instructor").First(&enrollment, enrollment.ID).Error; err != nil {
		return nil, utils.InternalError("Error enrolling in course", err)
	}
	return &enrollment, nil
}

// UpdateProgress applies a progress/completion write for the enrollment's own student.
// completedAt is stamped only on the first transition to completed.
func (s *EnrollmentService) UpdateProgress(ctx context.Context, enrollmentID, actorID uint, in ProgressUpdate) (*models.Enrollment, error) {
	db := s.DB.WithContext(ctx)

	var enrollment models.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Enrollment not found")
		}
		return nil, utils.InternalError("Error updating progress", err)
	}

	// no admin override for progress
	if enrollment.StudentID != actorID {
		return nil, utils.ForbiddenError("Not authorized to update this enrollment")
	}

	updates := map[string]interface{}{}
	if in.Progress != nil {
		if math.IsNaN(*in.Progress) {
			return nil, utils.InvalidInputError("Progress must be a number")
		}
		updates["progress"] = ClampProgress(*in.Progress)
	}
	if in.Completed != nil {
		updates["completed"] = *in.Completed
		if *in.Completed && enrollment.CompletedAt == nil {
			updates["completed_at"] = s.Now()
		}
	}

	if len(updates) > 0 {
		if err := db.Model(&enrollment).Updates(updates).Error; err != nil {
			return nil, utils.InternalError("Error updating progress", err)
		}
	}

	var updated models.Enrollment
	if err := db.Preload("Course", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "title")
	}).First(&updated, enrollmentID).Error; err != nil {
		return nil, utils.InternalError("Error updating progress", err)
	}
	return &updated, nil
}
