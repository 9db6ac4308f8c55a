package utils

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

// rootDir is the module root, derived from this file's location so caller
// paths trim the same way whatever the checkout directory is called
var rootDir = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	// <root>/pkg/utils/debug.go
	return path.Dir(path.Dir(path.Dir(file))) + "/"
}()

// GetFileAndLoC returns the file path and line of code with skip being the number of stack frames to skip
func GetFileAndLoC(skip int) string {
	_, file, line, _ := runtime.Caller(1 + skip)

	// trim to the path inside the module
	file = strings.TrimPrefix(file, rootDir)

	return fmt.Sprintf(
		"%s:%d",
		file,
		line,
	)
}
