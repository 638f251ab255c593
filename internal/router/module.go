package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area (auth, events). Each module attaches
// its own routes and route-local middleware under the shared /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
