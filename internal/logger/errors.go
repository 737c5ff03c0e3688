package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned by Init without Log.AppName.
	ErrAppNameIsEmpty = errors.New("log: appName can not be empty")

	// ErrServiceNameIsEmpty is returned by Init without Log.ServiceName.
	ErrServiceNameIsEmpty = errors.New("log: serviceName can not be empty")

	// ErrFilePathIsEmpty is returned by Init when file logging is enabled without a directory.
	ErrFilePathIsEmpty = errors.New("log: file.path can not be empty when file logging is enabled")
)

// ErrorHandler reports events zerolog could not write on stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "log: dropped event: %v\n", err)
}
