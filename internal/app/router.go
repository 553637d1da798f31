package app

import (
	"net/http"

	"proctor_backend/docs"
	"proctor_backend/internal/middleware"
	"proctor_backend/internal/model"
	"proctor_backend/pkg/monitoring"
	"proctor_backend/pkg/security"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, tx gin.HandlerFunc) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.HealthCheck)

	store := cookie.NewStore([]byte(a.Config.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   a.Config.Session.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	api := router.Group("/api")
	api.Use(sessions.Sessions(a.Config.Session.CookieName, store), tx)

	session := middleware.SessionMiddleware(s.auth)
	credentials := security.CredentialLimiter(a.Config.RateLimit.LoginPerMinute)

	// 1. 账号与会话
	user := api.Group("/user")
	{
		user.POST("/create_account", credentials, c.auth.CreateAccount)
		user.POST("/authentication/login", credentials, c.auth.Login)
		user.POST("/authentication/token", credentials, c.auth.Token)
		// clears the cookie even when its session has already expired
		user.POST("/authentication/logout", c.auth.Logout)

		authed := user.Group("", session)
		authed.GET("/details", c.user.Details)
		authed.DELETE("/account", c.user.DeleteAccount)
	}

	// 2. 出题人
	setter := api.Group("/test_setter", session)
	setter.POST("/assume_role", c.user.AssumeTestSetter)
	setterOnly := setter.Group("", middleware.RoleMiddleware(s.user, model.TestSetterRole))
	{
		setterOnly.GET("/tests", c.testSetter.ListTests)
		setterOnly.POST("/create_test", c.testSetter.CreateTest)
		setterOnly.DELETE("/tests/:testId", c.testSetter.DeleteTest)
		setterOnly.POST("/tests/:testId/questions", c.testSetter.AddQuestion)
		setterOnly.PUT("/tests/:testId/questions/order", c.testSetter.ReorderQuestions)
		setterOnly.GET("/tests/:testId/attempts", c.testSetter.ListAttempts)
		setterOnly.PUT("/tests/:testId/attempts/:testTakerId/answers/:questionDiscriminator/marks", c.testSetter.GradeAnswer)
	}

	// 3. 考生
	taker := api.Group("/test_taker", session)
	taker.POST("/assume_role", c.user.AssumeTestTaker)
	takerOnly := taker.Group("", middleware.RoleMiddleware(s.user, model.TestTakerRole))
	{
		takerOnly.GET("/tests/:testId", c.testTaker.GetPaper)
		takerOnly.POST("/tests/:testId/attempt", c.testTaker.StartAttempt)
		takerOnly.GET("/tests/:testId/attempt", c.testTaker.GetAttempt)
		takerOnly.PUT("/tests/:testId/attempt/answers/:questionDiscriminator", c.testTaker.SaveAnswer)
		takerOnly.POST("/tests/:testId/attempt/answers/:questionDiscriminator/attachment", c.testTaker.UploadAttachment)
		takerOnly.POST("/tests/:testId/attempt/gaze", c.testTaker.RecordGaze)
		takerOnly.POST("/tests/:testId/attempt/finish", c.testTaker.FinishAttempt)
	}

	// 4. 监考人
	invigilator := api.Group("/invigilator", session)
	invigilator.POST("/assume_role", c.user.AssumeInvigilator)
	invigilatorOnly := invigilator.Group("", middleware.RoleMiddleware(s.user, model.InvigilatorRole))
	{
		invigilatorOnly.GET("/attempts", c.invigilator.ListAttempts)
		invigilatorOnly.GET("/tests/:testId/attempts/:testTakerId/gaze", c.invigilator.GazeLog)
		invigilatorOnly.POST("/tests/:testId/attempts/:testTakerId/cheating", c.invigilator.FlagCheating)
	}
}
