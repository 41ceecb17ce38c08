package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine: request-id + logging + CORS on
// everything, bearer-token auth on everything except the token exchange.
func NewRouter(handler *Handler, cors CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(), CORS(cors))

	router.POST("/token", handler.Login)

	authed := router.Group("/")
	authed.Use(RequireAuth(handler.Auth))
	{
		authed.GET("/tabledata", handler.TableData)
		authed.GET("/audittabledata", handler.AuditTableData)
		authed.GET("/unique/:column", handler.Unique)
		authed.GET("/filter/:column/:value", handler.Filter)
		authed.GET("/sort", handler.Sort)
		authed.POST("/add", handler.Add)
		authed.PUT("/update/:username", handler.Update)
		authed.DELETE("/delete/:username", handler.Delete)
	}

	return router
}
