package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quantfold/optionwheel/config"
	db "github.com/quantfold/optionwheel/db/sqlc"
)

// Server serves HTTP requests for the option P/L projection service.
type Server struct {
	config *config.Config
	store  db.Store
	router *gin.Engine
	logger zerolog.Logger
}

// NewServer creates a new HTTP server and sets up routing.
func NewServer(cfg *config.Config, store db.Store, logger zerolog.Logger) *Server {
	server := &Server{config: cfg, store: store, logger: logger}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.Default()

	router.POST("/register", server.register)

	authRoutes := router.Group("/v1").Use(server.authentication)
	authRoutes.POST("/compute", server.compute)
	server.router = router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
