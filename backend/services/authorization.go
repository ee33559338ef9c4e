package services

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// CanMutate is the single ownership rule: the owner or an admin may write.
func CanMutate(actorID, ownerID uint, actorRole models.Role) bool {
	return actorID == ownerID || actorRole == models.RoleAdmin
}

// HasRole reports whether role is one of allowed.
func HasRole(role models.Role, allowed ...models.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// AuthorizationPolicy resolves resource ownership from storage and applies
// CanMutate. Existence is always checked before ownership.
type AuthorizationPolicy struct {
	DB *gorm.DB
}

func NewAuthorizationPolicy(db *gorm.DB) *AuthorizationPolicy {
	return &AuthorizationPolicy{DB: db}
}

// Owner checks a resource whose owner id is already known.
func (p *AuthorizationPolicy) Owner(actor *models.User, ownerID uint, action, resource string) error {
	if !CanMutate(actor.ID, ownerID, actor.Role) {
		return utils.ForbiddenError("Not authorized to " + action + " this " + resource)
	}
	return nil
}

// Course loads a course and checks the actor owns it.
func (p *AuthorizationPolicy) Course(ctx context.Context, actor *models.User, courseID uint, action string) (*models.Course, error) {
	var course models.Course
	if err := p.DB.WithContext(ctx).First(&course, courseID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Course not found")
		}
		return nil, utils.InternalError("Error fetching course", err)
	}
	if err := p.Owner(actor, course.InstructorID, action, "course"); err != nil {
		return nil, err
	}
	return &course, nil
}

// Lesson loads a lesson with its course; ownership is the course's instructor.
func (p *AuthorizationPolicy) Lesson(ctx context.Context, actor *models.User, lessonID uint, action string) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := p.DB.WithContext(ctx).Preload("Course").First(&lesson, lessonID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Lesson not found")
		}
		return nil, utils.InternalError("Error fetching lesson", err)
	}
	if lesson.Course == nil {
		return nil, utils.NotFoundError("Course not found")
	}
	if err := p.Owner(actor, lesson.Course.InstructorID, action, "lesson"); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Quiz loads a quiz with its course; ownership is the course's instructor.
func (p *AuthorizationPolicy) Quiz(ctx context.Context, actor *models.User, quizID uint, action string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := p.DB.WithContext(ctx).Preload("Course").First(&quiz, quizID).Error; err != nil {
		if utils.IsNotFound(err) {
			return nil, utils.NotFoundError("Quiz not found")
		}
		return nil, utils.InternalError("Error fetching quiz", err)
	}
	if quiz.Course == nil {
		return nil, utils.NotFoundError("Course not found")
	}
	if err := p.Owner(actor, quiz.Course.InstructorID, action, "quiz"); err != nil {
		return nil, err
	}
	return &quiz, nil
}
