package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's when given.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func NewRouter(h *Handler) *gin.Engine {
	rg := gin.New()
	rg.Use(gin.Logger(), gin.Recovery(), RequestID())
	rg.MaxMultipartMemory = 8 << 20

	rg.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	p := rg.Group("/portfolio/:userId")
	p.GET("", h.GetPortfolio)
	p.DELETE("", h.ResetPortfolio)
	p.POST("/upload", h.UploadCSV)
	p.POST("/rows", h.PostRows)
	p.GET("/holdings", h.GetHoldings)
	p.GET("/summary", h.GetSummary)
	p.GET("/chart/history.png", h.GetHistoryChart)
	p.GET("/chart/allocation.png", h.GetAllocationChart)
	return rg
}
