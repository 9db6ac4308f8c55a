package middleware

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Static serves GET and HEAD requests from dir when the path names an existing
// file, or a directory holding an index.html. Anything else falls through.
func Static(dir string) gin.HandlerFunc {
	root := http.Dir(dir)
	fileServer := http.FileServer(root)

	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodGet && method != http.MethodHead {
			c.Next()
			return
		}

		if !hasFile(root, c.Request.URL.Path) {
			c.Next()
			return
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
		c.Abort()
	}
}

func hasFile(root http.FileSystem, name string) bool {
	name = path.Clean("/" + name)

	f, err := root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := root.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	index.Close()
	return true
}
