package core

import (
	"sync"

	"github.com/go-drift/hookslab/pkg/errors"
)

// ErrorWidgetBuilder creates a fallback widget when a component build fails.
// The builder receives the build error and should return a widget to display
// in place of the failed component.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetBuilder ErrorWidgetBuilder = DefaultErrorWidgetBuilder
	errorBuilderMu     sync.RWMutex
)

// SetErrorWidgetBuilder configures the global error widget builder.
// Pass nil to restore the default builder.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorBuilderMu.Lock()
	defer errorBuilderMu.Unlock()
	if builder == nil {
		errorWidgetBuilder = DefaultErrorWidgetBuilder
	} else {
		errorWidgetBuilder = builder
	}
}

// GetErrorWidgetBuilder returns the current error widget builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorBuilderMu.RLock()
	defer errorBuilderMu.RUnlock()
	return errorWidgetBuilder
}

// DefaultErrorWidgetBuilder returns the built-in placeholder.
func DefaultErrorWidgetBuilder(err *errors.BuildError) Widget {
	return errorPlaceholder{err: err}
}

// errorPlaceholder is painted in place of a component whose build failed.
type errorPlaceholder struct {
	RenderBase
	err *errors.BuildError
}

func (p errorPlaceholder) Paint() string {
	if !DebugMode || p.err == nil {
		return "error"
	}
	return "error: " + p.err.Error()
}
