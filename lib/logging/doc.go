// Package logging provides named, leveled loggers with a fixed
// "LEVEL | name | message" line format, used by the command-line interface.
package logging
