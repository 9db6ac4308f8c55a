package utils

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func wrappedCaller() string {
	return GetFileAndLoC(1)
}

func TestGetFileAndLoC(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	got := GetFileAndLoC(0)
	assert.True(t, strings.HasSuffix(got, fmt.Sprintf("pkg/utils/debug_test.go:%d", line+1)), "GetFileAndLoC() = %v", got)

	_, _, line, _ = runtime.Caller(0)
	got = wrappedCaller()
	assert.True(t, strings.HasSuffix(got, fmt.Sprintf("pkg/utils/debug_test.go:%d", line+1)), "GetFileAndLoC(1) = %v", got)
}

func TestGetFileAndLoC_RelativeToModuleRoot(t *testing.T) {
	got := GetFileAndLoC(0)

	assert.True(t, strings.HasPrefix(got, "pkg/utils/debug_test.go:"), "GetFileAndLoC() = %v", got)
}
