package letterbox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("test", false, &out, &errOut, 0)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)
	l.Warnf("careful")
	l.Errorf("broken")

	assert.Equal(t, "[test] INFO: shown 2\n", out.String())
	assert.Equal(t, "[test] WARN: careful\n[test] ERROR: broken\n", errOut.String())

	out.Reset()
	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("visible")
	assert.Equal(t, "[test] DEBUG: visible\n", out.String())
}

func TestDefaultLogger_NoPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWriterLogger("", false, &out, &out, 0)
	l.Infof("plain")
	assert.Equal(t, "INFO: plain\n", out.String())
}

func TestLoggingModule_TagsFrames(t *testing.T) {
	var out bytes.Buffer
	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "lb", Out: &out}).Build()
	app.UseSystem(System(func(cmd *Commands) {
		if cmd.Frame() == 2 {
			app.Logger().Infof("third frame")
		}
	}).InStage(Update))

	app.Logger().Infof("before")
	app.Step()
	app.Step()
	app.Step()

	assert.Contains(t, out.String(), "[lb] INFO: frame=0 before\n")
	assert.Contains(t, out.String(), "[lb] INFO: frame=2 third frame\n")
}

func TestNopLogger(t *testing.T) {
	var app *App
	l := app.Logger()
	assert.False(t, l.DebugEnabled())
	l.Infof("dropped")
}
