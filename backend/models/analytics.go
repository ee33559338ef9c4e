package models

// StudentStatistics summarises a student's enrollments and quiz attempts.
// Averages are two-decimal strings.
type StudentStatistics struct {
	TotalCourses     int    `json:"totalCourses"`
	CompletedCourses int    `json:"completedCourses"`
	AverageProgress  string `json:"averageProgress"`
	TotalQuizzes     int    `json:"totalQuizzes"`
	AverageQuizScore string `json:"averageQuizScore"`
}

type InstructorStatistics struct {
	TotalCourses     int    `json:"totalCourses"`
	TotalEnrollments int    `json:"totalEnrollments"`
	TotalStudents    int    `json:"totalStudents"`
	TotalEarnings    string `json:"totalEarnings"`
}

type CoursePerformance struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Enrollments int     `json:"enrollments"`
	Lessons     int     `json:"lessons"`
	Quizzes     int     `json:"quizzes"`
	Rating      float64 `json:"rating"`
	Earnings    float64 `json:"earnings"`
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Course{},
		&Lesson{},
		&Quiz{},
		&QuizAttempt{},
		&Enrollment{},
		&Discussion{},
		&Subscription{},
	}
}
