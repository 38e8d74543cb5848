package utils

import (
	"github.com/tutumagi/scene/logger"

	"go.uber.org/zap"
)

// CatchPanic call a `f` and return the err if `f` paniced
func CatchPanic(f func()) (err interface{}) {
	defer func() {
		err = recover()
		if err != nil {
			logger.Error("catch panic error", zap.Any("error", err), zap.Stack("stack"))
		}
	}()
	f()
	return
}

// RunPanicless run `f`, return true if there is no panic
func RunPanicless(f func()) (success bool) {
	return CatchPanic(f) == nil
}
