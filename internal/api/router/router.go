package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/carousel-generator/internal/api/handlers/carousel"
	"github.com/aliskhannn/carousel-generator/internal/api/respond"
	"github.com/aliskhannn/carousel-generator/internal/middleware"
)

func Setup(h *carousel.Handler) *ginext.Engine {
	r := ginext.New()

	r.Use(middleware.CORSMiddleware())
	r.Use(ginext.Logger())
	r.Use(ginext.Recovery())

	api := r.Group("/api")

	api.POST("/carousels", h.Generate)      // synchronous generation, returns the pdf
	api.POST("/carousels/async", h.Enqueue) // queued generation, returns the task id
	api.GET("/carousels/*key", h.Download)  // getting a stored carousel by object key
	api.DELETE("/carousels/*key", h.Remove) // deleting a stored carousel by object key
	api.GET("/health", health)

	return r
}

func health(c *ginext.Context) {
	respond.OK(c, "ok")
}
