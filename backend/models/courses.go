package models

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

type Course struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"type:text" json:"description"`
	Category      string       `gorm:"index" json:"category"`
	Difficulty    Difficulty   `gorm:"type:varchar(16);not null;default:BEGINNER" json:"difficulty"`
	Price         float64      `gorm:"not null;default:0" json:"price"`
	Thumbnail     string       `json:"thumbnail,omitempty"`
	InstructorID  uint         `gorm:"index;not null" json:"instructorId"`
	Instructor    *User        `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Rating        float64      `gorm:"not null;default:0" json:"rating"`
	EnrolledCount int          `gorm:"not null;default:0" json:"enrolledCount"`
	Lessons       []Lesson     `gorm:"constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
	Quizzes       []Quiz       `gorm:"constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`
	Enrollments   []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Discussions   []Discussion `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type Lesson struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	CourseID uint    `gorm:"index;not null" json:"courseId"`
	Course   *Course `json:"course,omitempty"`
	Title    string  `gorm:"not null" json:"title"`
	Content  string  `gorm:"type:text" json:"content"`
	VideoURL string  `json:"videoUrl,omitempty"`
	Duration int     `gorm:"not null;default:0" json:"duration"`
	// Position within the course; ties fall back to insertion order (id).
	Order     int       `gorm:"column:position;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonOrder sorts lessons the way a course presents them.
const LessonOrder = "position asc, id asc"
