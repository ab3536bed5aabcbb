// Package logging configures structured logging for Polaris.
//
// All components log through log/slog. This package builds the handler from
// configuration (level, format, destination) and provides Sanitize, which
// strips HTML tags and collapses whitespace so provider error bodies can be
// logged as a single readable line.
package logging
