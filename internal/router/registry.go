package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var ErrAlreadyMounted = errors.New("router: modules already mounted")

// Registry collects feature modules and mounts them under /api. Middleware
// passed to Use wraps every module route but not /healthz.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	log         *logrus.Logger
	middlewares []gin.HandlerFunc
	modules     []Module
	mounted     bool
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, log: logger}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
}

// RegisterAll mounts the health probe and every module, once.
func (r *Registry) RegisterAll() error {
	if r.mounted {
		return ErrAlreadyMounted
	}
	r.mounted = true

	started := time.Now()
	r.Engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "uptime": time.Since(started).Round(time.Second).String()})
	})

	r.API = r.Engine.Group("/api", r.middlewares...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
	if r.log != nil {
		r.log.WithFields(logrus.Fields{"modules": len(r.modules), "routes": len(r.Engine.Routes())}).Info("routes mounted")
	}
	return nil
}
