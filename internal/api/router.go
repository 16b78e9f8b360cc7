package api

import (
	"net/http"

	"github.com/dennismutuku2005/stream-wisp-sub001/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {

	router := gin.Default()
	docs.SwaggerInfo.BasePath = "/api"

	messageRoutes := router.Group("/api/messages")
	{
		messageRoutes.POST("/dispatch", h.dispatchMessageHandler)
		messageRoutes.POST("/estimate", h.estimateDispatchHandler)
		messageRoutes.GET("/dispatches", h.getDispatchesHandler)
	}
	router.GET("/api/credits", h.getCreditsHandler)
	router.GET("/api/customers/suggest", h.suggestCustomersHandler)

	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
