package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var (
	// Info 正常日志，输出到 stdout
	Info zerolog.Logger

	// Error 错误日志，输出到 stderr
	Error zerolog.Logger
)

func init() {
	Info = newLogger(os.Stdout, "json")
	Error = newLogger(os.Stderr, "json")
}

// Init 根据配置设置日志级别与格式 (json | console)
func Init(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return eris.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	Info = newLogger(os.Stdout, format)
	Error = newLogger(os.Stderr, format)
	return nil
}

func newLogger(w io.Writer, format string) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// For 返回带 component 字段的子 logger
func For(component string) zerolog.Logger {
	return Info.With().Str("component", component).Logger()
}

// Println 输出正常日志到 stdout
func Println(v ...interface{}) {
	Info.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Printf 格式化输出正常日志到 stdout
func Printf(format string, v ...interface{}) {
	Info.Info().Msgf(format, v...)
}

// Errorln 输出错误日志到 stderr
func Errorln(v ...interface{}) {
	Error.Error().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// Errorf 格式化输出错误日志到 stderr
func Errorf(format string, v ...interface{}) {
	Error.Error().Msgf(format, v...)
}

// Fatalf 输出致命错误并退出程序
func Fatalf(format string, v ...interface{}) {
	Error.Fatal().Msgf(format, v...)
}
