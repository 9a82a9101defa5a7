/*
Copyright © 2026 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package logging provides the structured logger the resolver kernel and
// CLI commands use to report provider-load diagnostics, shaped like the
// teacher's resolve.Logger interface but backed by go.uber.org/zap.
package logging

import "go.uber.org/zap"

// Logger is the small leveled-logging surface weslink's packages depend
// on, never on *zap.Logger directly, so a test can swap in a no-op
// implementation.
type Logger interface {
	Warning(format string, args ...any)
	Debug(format string, args ...any)
}

// zapLogger adapts a *zap.SugaredLogger to Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a Logger backed by a production zap logger, or a no-op
// logger if verbose is false (the CLI's default, to keep stdout clean for
// the assembled unit it writes).
func New(verbose bool) Logger {
	if !verbose {
		return Nop{}
	}
	z, err := zap.NewProduction()
	if err != nil {
		return Nop{}
	}
	return &zapLogger{sugar: z.Sugar()}
}

func (l *zapLogger) Warning(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *zapLogger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Nop discards every message; the default Logger when verbose logging
// was not requested.
type Nop struct{}

func (Nop) Warning(string, ...any) {}
func (Nop) Debug(string, ...any)   {}
