/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package history

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the main process log. All named logs should be derivatives of
// this logger.
var Log = newLogger(zap.InfoLevel)

// logLevel controls the console core of Log; SetLogLevel adjusts it.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// newLogger returns a logger that writes to stderr with a console
// encoder. It is intended for setting up the main process logger
// during the program's init phase.
func newLogger(level zapcore.Level) *zap.Logger {
	logLevel.SetLevel(level)
	return NewConsoleLogger(os.Stderr)
}

// NewConsoleLogger returns a logger like Log that writes to w instead
// of stderr. Its level is also controlled by SetLogLevel.
func NewConsoleLogger(w io.Writer) *zap.Logger {
	consoleOut := zapcore.Lock(zapcore.AddSync(w))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format("2006/01/02 15:04:05.000"))
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewCore(consoleEncoder, consoleOut, logLevel)

	// avoid a firehose of logs
	const firstNMsgs, everyNthMsg = 10, 100
	core = zapcore.NewSamplerWithOptions(core, time.Second, firstNMsgs, everyNthMsg)

	return zap.New(core)
}

// SetLogLevel changes the level of Log; valid names are those that
// zapcore.ParseLevel accepts ("debug", "info", "warn", "error", ...).
func SetLogLevel(name string) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return Error{Kind: ArgumentError, Err: err, Log: "parsing log level"}
	}
	logLevel.SetLevel(lvl)
	return nil
}
