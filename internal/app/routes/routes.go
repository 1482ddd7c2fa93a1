package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/controllers"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Auth       *controllers.AuthController
	Users      *controllers.UserController
	Resources  *controllers.ResourceController
	Watchlist  *controllers.WatchlistController
	Teachers   *controllers.TeacherController
	Admissions *controllers.AdmissionController
	Chats      *controllers.ChatController
	Generation *controllers.GenerationController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes; a token, when sent, identifies the caller ---
	public := v1.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", c.Auth.Login)
		}

		resources := public.Group("/resources")
		{
			resources.GET("", c.Resources.ListResources)
			resources.GET("/facets", c.Resources.GetFacets)
			resources.GET("/:id", c.Resources.GetResource)
		}

		// Guests address their list with the X-Guest-Token header.
		watchlist := public.Group("/watchlist")
		{
			watchlist.GET("", c.Watchlist.GetWatchlist)
			watchlist.GET("/ids", c.Watchlist.GetWatchlistIDs)
			watchlist.POST("", c.Watchlist.AddToWatchlist)
			watchlist.DELETE("/:resourceId", c.Watchlist.RemoveFromWatchlist)
		}

		teachers := public.Group("/teachers")
		{
			teachers.GET("", c.Teachers.GetAllTeachers)
			teachers.GET("/:id", c.Teachers.GetTeacher)
		}

		admissions := public.Group("/admissions")
		{
			admissions.GET("/forms", c.Admissions.ListForms)
			admissions.GET("/forms/:id", c.Admissions.GetForm)
			admissions.POST("/forms/:id/applications", c.Admissions.Apply)
			admissions.GET("/applications/:id/receipt.png", c.Admissions.Receipt)
		}

		public.POST("/chat/ask", c.Chats.Ask)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", c.Auth.Me)
		authenticated.POST("/watchlist/merge", c.Watchlist.MergeWatchlist)

		chats := authenticated.Group("/chats")
		{
			chats.GET("", c.Chats.ListChats)
			chats.GET("/:id/messages", c.Chats.GetChatMessages)
			chats.DELETE("/:id", c.Chats.DeleteChat)
		}
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.UserRoleAdmin))
	{
		admin.POST("/resources", c.Resources.CreateResource)
		admin.PUT("/resources/:id", c.Resources.UpdateResource)
		admin.DELETE("/resources/:id", c.Resources.DeleteResource)
		admin.POST("/resources/upload", c.Resources.UploadFile)

		admin.POST("/teachers", c.Teachers.CreateTeacher)
		admin.PUT("/teachers/:id", c.Teachers.UpdateTeacher)
		admin.DELETE("/teachers/:id", c.Teachers.DeleteTeacher)
		admin.POST("/teachers/upload", c.Teachers.UploadTeacherImage)

		admin.GET("/admissions/forms", c.Admissions.ListForms)
		admin.POST("/admissions/forms", c.Admissions.CreateForm)
		admin.PUT("/admissions/forms/:id", c.Admissions.UpdateForm)
		admin.DELETE("/admissions/forms/:id", c.Admissions.DeleteForm)
		admin.GET("/admissions/forms/:id/applications", c.Admissions.ListApplications)
		admin.GET("/admissions/forms/:id/export", c.Admissions.ExportApplications)
		admin.PUT("/admissions/applications/:id/status", c.Admissions.UpdateStatus)
		admin.POST("/admissions/applications/:id/payment", c.Admissions.AttachPayment)

		admin.GET("/users", c.Users.ListUsers)
		admin.PUT("/users/:id/role", c.Users.UpdateRole)

		generate := admin.Group("/generate")
		{
			generate.POST("/content", c.Generation.GenerateContent)
			generate.POST("/omr", c.Generation.GenerateOMRSheet)
			generate.POST("/mcq-test", c.Generation.GenerateMCQTest)
			generate.POST("/sectioned-test", c.Generation.GenerateSectionedTest)
			generate.POST("/question-paper", c.Generation.GenerateQuestionPaper)
			generate.POST("/admission-description", c.Generation.GenerateAdmissionDescription)
			generate.POST("/payment-details", c.Generation.ExtractPaymentDetails)
		}
	}
}
