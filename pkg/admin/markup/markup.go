// Package markup renders operator-facing result messages.
package markup

import (
	"fmt"
	"html"
)

const (
	successPrefix = "<p class='green-text'>&#10004; "
	failurePrefix = "<p class='red-text'>&#10006; "
)

// Success formats a confirmation paragraph. Arguments are HTML-escaped.
func Success(format string, args ...interface{}) string {
	return successPrefix + fmt.Sprintf(format, escapeAll(args)...)
}

// Failure formats an error paragraph. Arguments are HTML-escaped.
func Failure(format string, args ...interface{}) string {
	return failurePrefix + fmt.Sprintf(format, escapeAll(args)...)
}

func escapeAll(args []interface{}) []interface{} {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case string:
			escaped[i] = html.EscapeString(v)
		case error:
			escaped[i] = html.EscapeString(v.Error())
		default:
			escaped[i] = arg
		}
	}
	return escaped
}
