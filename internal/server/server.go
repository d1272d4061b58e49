package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "materiality/internal/api/v1"
	"materiality/internal/apperr"
	"materiality/internal/config"
	"materiality/internal/workflow"
)

// devFrontend 开发模式下前端开发服务器地址
const devFrontend = "http://localhost:5173"

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, ctrl *workflow.Controller) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		v1:     v1.NewHandler(ctrl),
	}
	// 超过该大小的 multipart 内容写入临时文件
	s.router.MaxMultipartMemory = cfg.Upload.MaxBytes

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// V1 API 路由
	api := s.router.Group("/api/v1")
	{
		s.v1.RegisterRoutes(api)
	}

	if devMode {
		// 开发模式：非 API 请求转到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			if isAPIPath(c.Request.URL.Path) {
				notFound(c)
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, devFrontend+c.Request.URL.Path)
		})
	} else {
		s.router.NoRoute(notFound)
	}
}

func isAPIPath(p string) bool {
	return strings.HasPrefix(p, "/api/")
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, v1.Response{
		Code:    1004,
		Message: "요청한 경로를 찾을 수 없습니다: " + c.Request.URL.Path,
		Kind:    apperr.NotFound,
	})
}

// Handler 返回底层 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
