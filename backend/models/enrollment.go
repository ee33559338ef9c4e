package models

import "time"

// Enrollment ties one student to one course. The composite unique index is
// what makes a concurrent duplicate enroll fail.
type Enrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   uint       `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"studentId"`
	Student     *User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CourseID    uint       `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"courseId"`
	Course      *Course    `json:"course,omitempty"`
	Progress    float64    `gorm:"not null" json:"progress"`
	Completed   bool       `gorm:"not null" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	EnrolledAt  time.Time  `gorm:"index;not null" json:"enrolledAt"`
}

type EnrollmentState string

const (
	StateEnrolled   EnrollmentState = "ENROLLED"
	StateInProgress EnrollmentState = "IN_PROGRESS"
	StateCompleted  EnrollmentState = "COMPLETED"
)

func (e *Enrollment) State() EnrollmentState {
	switch {
	case e.Completed || e.Progress >= 100:
		return StateCompleted
	case e.Progress > 0:
		return StateInProgress
	default:
		return StateEnrolled
	}
}
