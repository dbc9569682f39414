// Package admin 提供运行期诊断的 HTTP 界面。
// 可以查看当前级别、过滤链和格式串，并在线调整最小级别。
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gocrud/logkit/event"
	"github.com/gocrud/logkit/logger"
)

// Mount 把诊断路由挂到给定的路由组
func Mount(r gin.IRouter, log *logger.Logger) {
	r.GET("/logkit/level", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"level": log.Level().String()})
	})

	r.PUT("/logkit/level", func(c *gin.Context) {
		var body struct {
			Level string `json:"level" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		level, err := event.ParseLevel(body.Level)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log.SetLevel(level)
		c.JSON(http.StatusOK, gin.H{"level": level.String()})
	})

	r.GET("/logkit/filters", func(c *gin.Context) {
		filters := log.Chain().Filters()
		names := make([]string, 0, len(filters))
		for _, f := range filters {
			names = append(names, f.Name())
		}
		c.JSON(http.StatusOK, gin.H{"filters": names})
	})

	r.GET("/logkit/pattern", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"format": log.Layout().Format()})
	})
}

// NewEngine 创建挂好诊断路由的 gin 引擎
func NewEngine(log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	Mount(engine, log)
	return engine
}
