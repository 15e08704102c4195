package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/justsurfingit/jobly-api/internal/auth"
	"github.com/justsurfingit/jobly-api/internal/dtos"
	"github.com/justsurfingit/jobly-api/internal/events"
	"github.com/justsurfingit/jobly-api/internal/metrics"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	serviceName     = "jobly-api"
)

type Deps struct {
	Jobs      JobStore
	Companies CompanyStore
	Users     UserStore
	Tokens    *auth.TokenManager
	Events    events.Publisher
	Logger    *zap.Logger

	// CORSOrigins empty allows every origin.
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	dtos.RegisterValidations()
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	sink := newEventSink(d.Events, d.Logger)

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			d.Logger.Error("panic", zap.Any("recovered", recovered))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				errorBody(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)))
		}),
		RequestLogger(d.Logger),
		otelgin.Middleware(serviceName),
		metrics.Middleware(),
		cors.New(corsConfig(d.CORSOrigins)),
		ErrorHandler(d.Logger),
		auth.Authenticate(d.Tokens),
	)
	r.NoRoute(notFound)

	r.GET("/health", HealthCheck)
	r.GET("/metrics", metrics.Handler())

	users := NewUserHandler(d.Users, d.Tokens, sink)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/token", users.Token)
		authGroup.POST("/register", users.Register)
		authGroup.GET("/me", auth.LoggedIn(), users.Me)
	}

	userGroup := r.Group("/users")
	{
		userGroup.POST("", auth.Admin(), users.CreateUser)
		userGroup.GET("", auth.Admin(), users.ListUsers)
		userGroup.GET("/:username", auth.SelfOrAdmin("username"), users.GetUser)
		userGroup.PATCH("/:username", auth.SelfOrAdmin("username"), users.UpdateUser)
		userGroup.DELETE("/:username", auth.SelfOrAdmin("username"), users.DeleteUser)
	}

	companies := NewCompanyHandler(d.Companies, sink)
	companyGroup := r.Group("/companies")
	{
		companyGroup.POST("", auth.Admin(), companies.CreateCompany)
		companyGroup.GET("", companies.ListCompanies)
		companyGroup.GET("/:handle", companies.GetCompany)
		companyGroup.PATCH("/:handle", auth.Admin(), companies.UpdateCompany)
		companyGroup.DELETE("/:handle", auth.Admin(), companies.DeleteCompany)
	}

	jobs := NewJobHandler(d.Jobs, sink)
	jobGroup := r.Group("/jobs")
	{
		jobGroup.POST("", auth.Admin(), jobs.CreateJob)
		jobGroup.GET("", jobs.ListJobs)
		jobGroup.GET("/:id", jobs.GetJob)
		jobGroup.PATCH("/:id", auth.Admin(), jobs.UpdateJob)
		jobGroup.DELETE("/:id", auth.Admin(), jobs.DeleteJob)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{requestIDHeader}
	return config
}

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		log.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
