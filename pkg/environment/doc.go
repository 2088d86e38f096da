// Package environment defines the well-known runtime environment names and
// context helpers used across notifykit to switch between development and
// production behavior (log format, log level, dev email sender, etc.).
package environment
