package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAnsiToHTML(t *testing.T) {
	in := "plain \033[32minfo\033[0m tail"
	out := ansiToHTML(in)
	assert.Equal(t, `<pre>plain <span style="color: green;">info</span> tail</pre>`, out)

	// unknown codes are dropped, open spans are closed at the end
	out = ansiToHTML("\033[36mcyan")
	assert.Equal(t, `<pre><span style="color: cyan;">cyan</span></pre>`, out)

	out = ansiToHTML("no colors")
	assert.Equal(t, "<pre>no colors</pre>", out)
}

func TestLoggerBuffersEntries(t *testing.T) {
	log := New()
	log.Info("diagram ready", zap.Int("sites", 3))

	require.NotEmpty(t, log.Logs)
	assert.Contains(t, log.Logs[0], "diagram ready")
	assert.Contains(t, log.Logs[0], "<span")

	log.ClearLogs()
	assert.Empty(t, log.Logs)
}
