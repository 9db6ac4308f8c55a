package controller

import (
	"net/http"

	"movies-api/pkg/apidocs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	docsIndexPath = "/api/docs/index.html"
	docsJSONPath  = "/api/docs/swagger.json"
)

// DocsController serves the swagger UI over the loaded API document
type DocsController struct {
	doc *apidocs.Document
	ui  gin.HandlerFunc
}

// NewDocsController creates a docs controller for doc
func NewDocsController(doc *apidocs.Document) *DocsController {
	return &DocsController{
		doc: doc,
		ui: ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL(docsJSONPath),
			ginSwagger.DocExpansion("list"),
		),
	}
}

// RegisterRoutes mounts the docs routes on rg
func (dc *DocsController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", dc.Index)
	rg.GET("/*any", dc.Serve)
}

// Index redirects to the swagger UI page
func (dc *DocsController) Index(c *gin.Context) {
	c.Redirect(http.StatusMovedPermanently, docsIndexPath)
}

// Serve answers the document itself and delegates everything else to the UI assets
func (dc *DocsController) Serve(c *gin.Context) {
	switch c.Param("any") {
	case "", "/":
		dc.Index(c)
	case "/swagger.json":
		c.Data(http.StatusOK, "application/json; charset=utf-8", dc.doc.JSON())
	default:
		dc.ui(c)
	}
}
