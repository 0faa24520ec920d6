// Package httpapi binds the storage backend and notification dispatcher to
// the REST API. Handlers are thin: they parse input, call the backend, and
// map outcomes onto the JSON envelope and an HTTP status.
package httpapi

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oakridgedental/clinichub/internal/notify"
	"github.com/oakridgedental/clinichub/internal/sqlite"
)

// Server holds the router and its collaborators.
type Server struct {
	backend    *sqlite.Backend
	dispatcher *notify.Dispatcher
	router     *gin.Engine
}

// NewServer builds the gin router with access logging and panic recovery
// through the global zap logger.
func NewServer(backend *sqlite.Backend, dispatcher *notify.Dispatcher) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	s := &Server{
		backend:    backend,
		dispatcher: dispatcher,
		router:     router,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	db := s.router.Group("/api/database")
	{
		db.GET("/stats", s.handleStats)
		db.GET("/tables", s.handleListTables)
		db.GET("/tables/:tableName", s.handleListRows)
		db.POST("/tables/:tableName", s.handleInsertRow)
		db.PUT("/tables/:tableName/:id", s.handleUpdateRow)
		db.DELETE("/tables/:tableName/:id", s.handleDeleteRow)
		db.GET("/search", s.handleSearch)
		db.POST("/backup", s.handleCreateBackup)
		db.GET("/backups", s.handleListBackups)
		db.POST("/query", s.handleRawQuery)
	}

	s.router.POST("/api/notifications/test", s.handleNotifyTest)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP listener and blocks.
func (s *Server) Run(addr string) error {
	zap.S().Infow("listening", "addr", addr)
	return s.router.Run(addr)
}
