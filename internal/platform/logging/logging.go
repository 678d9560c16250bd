/*
 * file: logging.go
 * package: logging
 * description:
 *     Thin leveled wrapper over the standard log package, matching the
 *     "INFO:"/"WARN:"/"ERROR:" prefix convention used throughout the
 *     original handlers and hub code.
 */
package logging

import "log"

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	log.Printf("INFO: "+format, args...)
}

// Warn logs a recoverable or unexpected condition.
func Warn(format string, args ...interface{}) {
	log.Printf("WARN: "+format, args...)
}

// Error logs a failure.
func Error(format string, args ...interface{}) {
	log.Printf("ERROR: "+format, args...)
}
