package logger

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap with a buffered core so the demo server can embed the
// log of a diagram run into the rendered page.
type ZapLogger struct {
	log    *zap.Logger
	logBuf *bytes.Buffer
	Logs   []string
}

func New() *ZapLogger {
	logBuf := &bytes.Buffer{}

	config := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    colorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.AddSync(logBuf),
		zap.DebugLevel,
	)

	return &ZapLogger{
		log:    zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)),
		logBuf: logBuf,
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("[2006-01-02 | 15:04:05]"))
}

func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	var colorCode string
	switch level {
	case zapcore.DebugLevel:
		colorCode = "\033[36m"
	case zapcore.InfoLevel:
		colorCode = "\033[32m"
	case zapcore.WarnLevel:
		colorCode = "\033[33m"
	case zapcore.ErrorLevel:
		colorCode = "\033[31m"
	default:
		colorCode = "\033[0m"
	}
	enc.AppendString(colorCode + level.String() + "\033[0m")
}

var ansiColors = map[string]string{
	"31": "red",
	"32": "green",
	"33": "yellow",
	"34": "blue",
	"36": "cyan",
}

var ansiRe = regexp.MustCompile(`\033\[(\d+)m`)

// ansiToHTML rewrites the console color escapes into span tags so the
// buffered log can be dropped into the demo page as-is.
func ansiToHTML(input string) string {
	var out strings.Builder
	out.WriteString("<pre>")

	last := 0
	open := false
	for _, m := range ansiRe.FindAllStringSubmatchIndex(input, -1) {
		out.WriteString(input[last:m[0]])
		code := input[m[2]:m[3]]
		if color, ok := ansiColors[code]; ok {
			if open {
				out.WriteString("</span>")
			}
			out.WriteString(`<span style="color: ` + color + `;">`)
			open = true
		} else if code == "0" && open {
			out.WriteString("</span>")
			open = false
		}
		last = m[1]
	}
	out.WriteString(input[last:])
	if open {
		out.WriteString("</span>")
	}
	out.WriteString("</pre>")
	return out.String()
}

func (z *ZapLogger) updateLogs() {
	z.Logs = []string{ansiToHTML(z.logBuf.String())}
}

func (z *ZapLogger) ClearLogs() {
	z.logBuf.Reset()
	z.Logs = nil
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.log.Info(msg, fields...)
	z.updateLogs()
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.log.Debug(msg, fields...)
	z.updateLogs()
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.log.Error(msg, fields...)
	z.updateLogs()
}

func (z *ZapLogger) Fatal(msg string, fields ...zap.Field) {
	z.log.Fatal(msg, fields...)
	z.updateLogs()
}
