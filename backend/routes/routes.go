package routes

import (
	"log"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/controllers"
	_ "learnhub/backend/docs"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"gorm.io/gorm"
)

// NewApp builds the Fiber application with the middleware stack and all routes.
func NewApp(db *gorm.DB, cfg *config.Config, logger *log.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "LearnHub API",
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          utils.ErrorHandler,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	app.Use(middleware.Recovery(cfg.IsDevelopment()))
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggingMiddleware(logger))
	origins := cfg.FrontendURL
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: origins != "*",
	}))
	app.Use(compress.New())

	SetupRoutes(app, db, cfg)

	// Anything that fell through
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api", middleware.RateLimiter(cfg.RateLimitMax, time.Minute))

	healthController := controllers.NewHealthController(db)
	api.Get("/health", healthController.Check)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(db, cfg)
	staff := middleware.Authorize(models.RoleInstructor, models.RoleAdmin)
	studentOnly := middleware.Authorize(models.RoleStudent)

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	auth := api.Group("/auth")
	auth.Post("/signup", authController.Signup)
	auth.Post("/login", authController.Login)
	auth.Post("/reset-password", authController.ResetPassword)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	users := api.Group("/users", authMiddleware)
	users.Get("/profile", userController.GetProfile)
	users.Put("/profile", userController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := api.Group("/courses", authMiddleware)
	courses.Get("/", coursesController.GetCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", staff, coursesController.CreateCourse)
	courses.Put("/:id", staff, coursesController.UpdateCourse)
	courses.Delete("/:id", staff, coursesController.DeleteCourse)

	// Lessons routes
	lessonsController := controllers.NewLessonsController(db, cfg)
	lessons := api.Group("/lessons", authMiddleware)
	lessons.Get("/", lessonsController.GetLessons)
	lessons.Get("/:id", lessonsController.GetLesson)
	lessons.Post("/", staff, lessonsController.CreateLesson)
	lessons.Put("/:id", staff, lessonsController.UpdateLesson)
	lessons.Delete("/:id", staff, lessonsController.DeleteLesson)

	// Quizzes routes
	quizzesController := controllers.NewQuizzesController(db, cfg)
	quizzes := api.Group("/quizzes", authMiddleware)
	quizzes.Get("/", quizzesController.GetQuizzes)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/", staff, quizzesController.CreateQuiz)
	quizzes.Put("/:id", staff, quizzesController.UpdateQuiz)
	quizzes.Delete("/:id", staff, quizzesController.DeleteQuiz)
	quizzes.Post("/:id/submit", quizzesController.SubmitQuiz)

	// Enrollment routes
	enrollmentsController := controllers.NewEnrollmentsController(db, cfg)
	enrollments := api.Group("/enrollments", authMiddleware, studentOnly)
	enrollments.Get("/", enrollmentsController.GetEnrollments)
	enrollments.Post("/", enrollmentsController.Enroll)
	enrollments.Put("/:id/progress", enrollmentsController.UpdateProgress)

	// Discussion routes
	discussionsController := controllers.NewDiscussionsController(db, cfg)
	discussions := api.Group("/discussions", authMiddleware)
	discussions.Get("/", discussionsController.GetDiscussions)
	discussions.Post("/", discussionsController.CreateDiscussion)
	discussions.Post("/:id/reply", discussionsController.AddReply)
	discussions.Put("/:id", discussionsController.UpdateDiscussion)
	discussions.Delete("/:id", discussionsController.DeleteDiscussion)

	// Subscription routes
	subscriptionsController := controllers.NewSubscriptionsController(db, cfg)
	subscriptions := api.Group("/subscriptions", authMiddleware)
	subscriptions.Get("/", subscriptionsController.GetSubscriptions)
	subscriptions.Get("/status", subscriptionsController.GetStatus)
	subscriptions.Post("/", subscriptionsController.CreateSubscription)
	subscriptions.Put("/:id/cancel", subscriptionsController.CancelSubscription)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := api.Group("/analytics", authMiddleware)
	analytics.Get("/progress", analyticsController.GetStudentProgress)
	analytics.Get("/instructor", staff, analyticsController.GetInstructorAnalytics)
}
