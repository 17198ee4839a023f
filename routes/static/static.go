package static

import (
	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine) {
	r.Static("/public", "./public")
	r.GET("/", func(c *gin.Context) {
		c.File("./public/index.html")
	})
}
