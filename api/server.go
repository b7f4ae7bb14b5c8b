package api

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/fusex/medevac-api/audit"
	"github.com/fusex/medevac-api/logmodule"
	"github.com/fusex/medevac-api/permission"
	"github.com/fusex/medevac-api/store"
	"github.com/fusex/medevac-api/utils"
	"github.com/fusex/medevac-api/workflow"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store store.EvacuationCore

	// Workflow
	requests    workflow.RequestService
	responses   workflow.ResponseService
	authority   *permission.Authority
	historian   *audit.Historian
	transitions *workflow.Transitions

	// JWT public key of the identity provider
	jwtPublicKey *rsa.PublicKey
}

// NewServer new instance of server
func NewServer(
	core store.EvacuationCore,
	requests workflow.RequestService,
	responses workflow.ResponseService,
	authority *permission.Authority,
	transitions *workflow.Transitions,
	jwtKey *rsa.PublicKey) *Server {
	return &Server{
		store:        core,
		requests:     requests,
		responses:    responses,
		authority:    authority,
		historian:    audit.NewHistorian(core, utils.RoleLabeler(utils.DefaultLanguage)),
		transitions:  transitions,
		jwtPublicKey: jwtKey,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	apiRoute.Use(s.authMiddleware())
	apiRoute.Use(s.recognizeUserMiddleware())

	requestRoute := apiRoute.Group("/requests")
	{
		requestRoute.GET("", s.capabilityGateway(permission.RequestsRead), s.listRequests)
		requestRoute.POST("", s.createRequest)
		requestRoute.GET("/:requestID", s.capabilityGateway(permission.RequestsRead), s.requestDetail)
		requestRoute.DELETE("/:requestID", s.cancelRequest)
		requestRoute.PATCH("/:requestID/status", s.advanceRequest)
		requestRoute.PUT("/:requestID/status", s.selectResponse)
	}

	responseRoute := apiRoute.Group("/responses")
	{
		responseRoute.GET("", s.capabilityGateway(permission.RequestsRead), s.listResponses)
		responseRoute.GET("/:responseID", s.capabilityGateway(permission.RequestsRead), s.responseDetail)
		responseRoute.PATCH("/:responseID/status", s.advanceResponse)
		responseRoute.PUT("/:responseID/status", s.overrideResponseStatus)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

// abortWithWorkflowError answers a failed workflow operation with the status
// of its error kind.
func abortWithWorkflowError(c *gin.Context, err error, notFound ErrorResponse) {
	switch {
	case errors.Is(err, workflow.ErrUnauthenticated):
		abortWithEncoding(c, http.StatusUnauthorized, errorUserNotFound, err)
	case errors.Is(err, workflow.ErrUnauthorized):
		abortWithEncoding(c, http.StatusForbidden, errorForbidden, err)
	case errors.Is(err, workflow.ErrNotFound):
		abortWithEncoding(c, http.StatusNotFound, notFound, err)
	case errors.Is(err, workflow.ErrValidation):
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidDecision.withDetail(err.Error()), err)
	default:
		log.WithError(err).Error("workflow operation failed")
		sentry.CaptureException(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	}
}

// committed reports whether err leaves the workflow step committed. A
// placement failure does; its message is returned for the response body.
func committed(c *gin.Context, err error, notFound ErrorResponse) (bool, string) {
	if err == nil {
		return true, ""
	}

	var placement *workflow.PlacementError
	if errors.As(err, &placement) {
		c.Error(err)
		return true, placement.Error()
	}

	abortWithWorkflowError(c, err, notFound)
	return false, ""
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		if err != nil {
			c.Error(err)
		}
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
