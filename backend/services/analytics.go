package services

import (
	"context"
	"sort"
	"strconv"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// StudentProgress is the caller's learning history with summary statistics.
type StudentProgress struct {
	Enrollments  []models.Enrollment     `json:"enrollments"`
	QuizAttempts []models.QuizAttempt    `json:"quizAttempts"`
	Statistics   models.StudentStatistics `json:"statistics"`
}

type InstructorAnalytics struct {
	Statistics        models.InstructorStatistics `json:"statistics"`
	Courses           []models.CoursePerformance  `json:"courses"`
	RecentEnrollments []models.Enrollment         `json:"recentEnrollments"`
}

const recentEnrollmentsLimit = 10

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

func twoDecimals(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// StudentProgress collects the student's enrollments (optionally for one course)
// and every quiz attempt, newest first.
func (s *AnalyticsService) StudentProgress(ctx context.Context, studentID, courseID uint) (*StudentProgress, error) {
	db := s.DB.WithContext(ctx)

	enrollments := []models.Enrollment{}
	query := db.Where("student_id = ?", studentID)
	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	err := query.Preload("Course", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "title", "category")
	}).Order("enrolled_at desc, id desc").Find(&enrollments).Error
	if err != nil {
		return nil, utils.InternalError("Error fetching student progress", err)
	}

	attempts := []models.QuizAttempt{}
	err = db.Where("user_id = ?", studentID).
		Preload("Quiz", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "course_id")
		}).
		Preload("Quiz.Course", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title")
		}).
		Order(models.LatestAttemptOrder).
		Find(&attempts).Error
	if err != nil {
		return nil, utils.InternalError("Error fetching student progress", err)
	}

	stats := models.StudentStatistics{
		TotalCourses: len(enrollments),
		TotalQuizzes: len(attempts),
	}
	var progressSum, scoreSum float64
	for _, e := range enrollments {
		progressSum += e.Progress
		if e.Completed {
			stats.CompletedCourses++
		}
	}
	for _, a := range attempts {
		scoreSum += a.Score
	}
	stats.AverageProgress = twoDecimals(average(progressSum, len(enrollments)))
	stats.AverageQuizScore = twoDecimals(average(scoreSum, len(attempts)))

	return &StudentProgress{Enrollments: enrollments, QuizAttempts: attempts, Statistics: stats}, nil
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// InstructorAnalytics summarises the instructor's courses. sortBy may be
// "revenue" or "enrollments"; anything else keeps course id order.
func (s *AnalyticsService) InstructorAnalytics(ctx context.Context, instructorID uint, sortBy string) (*InstructorAnalytics, error) {
	db := s.DB.WithContext(ctx)

	var courses []models.Course
	if err := db.Where("instructor_id = ?", instructorID).Order("id asc").Find(&courses).Error; err != nil {
		return nil, utils.InternalError("Error fetching instructor analytics", err)
	}
	ids := make([]uint, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}

	enrollments, err := CountBy(db, &models.Enrollment{}, "course_id", ids)
	if err != nil {
		return nil, utils.InternalError("Error fetching instructor analytics", err)
	}
	lessons, err := CountBy(db, &models.Lesson{}, "course_id", ids)
	if err != nil {
		return nil, utils.InternalError("Error fetching instructor analytics", err)
	}
	quizzes, err := CountBy(db, &models.Quiz{}, "course_id", ids)
	if err != nil {
		return nil, utils.InternalError("Error fetching instructor analytics", err)
	}

	var students int64
	if len(ids) > 0 {
		err = db.Model(&models.Enrollment{}).
			Where("course_id IN ?", ids).
			Distinct("student_id").
			Count(&students).Error
		if err != nil {
			return nil, utils.InternalError("Error fetching instructor analytics", err)
		}
	}

	stats := models.InstructorStatistics{TotalCourses: len(courses), TotalStudents: int(students)}
	performance := make([]models.CoursePerformance, 0, len(courses))
	var earnings float64
	for _, c := range courses {
		n := int(enrollments[c.ID])
		p := models.CoursePerformance{
			ID:          c.ID,
			Title:       c.Title,
			Enrollments: n,
			Lessons:     int(lessons[c.ID]),
			Quizzes:     int(quizzes[c.ID]),
			Rating:      c.Rating,
			Earnings:    c.Price * float64(n),
		}
		stats.TotalEnrollments += n
		earnings += p.Earnings
		performance = append(performance, p)
	}
	stats.TotalEarnings = twoDecimals(earnings)

	switch sortBy {
	case "revenue":
		sort.SliceStable(performance, func(i, j int) bool { return performance[i].Earnings > performance[j].Earnings })
	case "enrollments":
		sort.SliceStable(performance, func(i, j int) bool { return performance[i].Enrollments > performance[j].Enrollments })
	}

	recent := []models.Enrollment{}
	if len(ids) > 0 {
		err = db.Where("course_id IN ?", ids).
			Preload("Course", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "title") }).
			Preload("Student", func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name", "email") }).
			Order("enrolled_at desc, id desc").
			Limit(recentEnrollmentsLimit).
			Find(&recent).Error
		if err != nil {
			return nil, utils.InternalError("Error fetching instructor analytics", err)
		}
	}

	return &InstructorAnalytics{Statistics: stats, Courses: performance, RecentEnrollments: recent}, nil
}

// CountBy counts rows of model grouped by column, restricted to the given ids.
func CountBy(db *gorm.DB, model any, column string, ids []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []struct {
		GroupKey uint
		Total    int64
	}
	err := db.Model(model).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.GroupKey] = r.Total
	}
	return counts, nil
}
