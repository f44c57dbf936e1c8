// Package logging builds the slog loggers used across studioctl.
//
// Two handler formats are supported: a compact console format that hoists the
// component attribute into the message prefix, and standard JSON for log
// shippers. Construction flows from config so every command logs the same way.
package logging
