package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "aarogya-ai/internal/app"
	"aarogya-ai/internal/bootstrap"
	"aarogya-ai/internal/cache"
	"aarogya-ai/internal/platform/rabbitmq"
	"aarogya-ai/internal/rag"
	"aarogya-ai/internal/repository"
	"aarogya-ai/internal/transport/http/handler"
	"aarogya-ai/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	sessionRepo := repository.NewSessionRepository(app.MySQL)
	reportRepo := repository.NewReportRepository(app.MySQL)
	appointmentRepo := repository.NewAppointmentRepository(app.MySQL)
	connectionRepo := repository.NewConnectionRepository(app.MySQL)
	chatMessageRepo := repository.NewChatMessageRepository(app.MySQL)

	sessionTTL := time.Duration(app.Config.Auth.SessionExpireMinute) * time.Minute
	authService := appsvc.NewAuthService(userRepo, sessionRepo, app.Config.Auth.SessionSecret, sessionTTL)

	indexPublisher := rabbitmq.NewIndexJobPublisher(app.MQConn, app.Config.RabbitMQ.ReportIndexQueue)
	reportService := appsvc.NewReportService(reportRepo, indexPublisher, app.Logger)

	retriever := rag.NewRetriever(app.VectorStore, app.Embedder)
	generator := rag.NewGenerator(app.ChatLLM, app.Logger)
	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(app.Config.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	chatService := appsvc.NewChatService(
		chatMessageRepo,
		retriever,
		generator,
		historyCache,
		app.Config.RAG.AskTopK,
		app.Config.RAG.SummarizeTopK,
		app.Logger,
	)

	transcribeService := appsvc.NewTranscribeService(app.Transcriber, app.Logger)
	doctorService := appsvc.NewDoctorService(connectionRepo, reportRepo, appointmentRepo)
	connectionService := appsvc.NewConnectionService(connectionRepo)
	appointmentService := appsvc.NewAppointmentService(appointmentRepo)
	adminService := appsvc.NewAdminService(userRepo, sessionRepo)

	authHandler := handler.NewAuthHandler(authService, int(sessionTTL.Seconds()))
	reportHandler := handler.NewReportHandler(reportService)
	chatHandler := handler.NewChatHandler(chatService)
	transcribeHandler := handler.NewTranscribeHandler(transcribeService)
	doctorHandler := handler.NewDoctorHandler(doctorService)
	connectionHandler := handler.NewConnectionHandler(connectionService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService)
	adminHandler := handler.NewAdminHandler(adminService)

	auth := middleware.AuthSession(authService)

	userGroup := router.Group("/users")
	userGroup.POST("/register", authHandler.Register)
	userGroup.POST("/login", authHandler.Login)
	userGroup.POST("/logout", auth, authHandler.Logout)
	userGroup.GET("/me", auth, authHandler.Me)

	reportGroup := router.Group("/reports")
	reportGroup.Use(auth)
	reportGroup.POST("", reportHandler.Create)
	reportGroup.GET("", reportHandler.List)
	reportGroup.GET("/:id", reportHandler.Get)
	reportGroup.POST("/upload", reportHandler.UploadPDF)

	chatGroup := router.Group("/chat")
	chatGroup.Use(auth)
	chatGroup.POST("", chatHandler.Chat)
	chatGroup.GET("/history", chatHandler.History)

	router.POST("/transcribe", auth, transcribeHandler.Transcribe)

	doctorGroup := router.Group("/doctor")
	doctorGroup.Use(auth)
	doctorGroup.GET("/patients", doctorHandler.ListPatients)
	doctorGroup.GET("/patients/:email/reports", doctorHandler.PatientReports)
	doctorGroup.GET("/patients/:email/appointments", doctorHandler.PatientAppointments)

	connectionGroup := router.Group("/connections")
	connectionGroup.Use(auth)
	connectionGroup.POST("", connectionHandler.Request)
	connectionGroup.GET("/pending", connectionHandler.ListPending)
	connectionGroup.PUT("/:id/accept", connectionHandler.Accept)

	appointmentGroup := router.Group("/appointments")
	appointmentGroup.Use(auth)
	appointmentGroup.POST("", appointmentHandler.Schedule)
	appointmentGroup.PUT("/:id", appointmentHandler.Update)
	appointmentGroup.GET("", appointmentHandler.List)

	adminGroup := router.Group("/admin")
	adminGroup.Use(auth)
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)

	return router
}
