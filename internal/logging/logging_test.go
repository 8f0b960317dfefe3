package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hbjs97/condact/internal/logging"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, false)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("cannot read hook directory", zap.String("dir", "/e/etc/conda/activate.d"))
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "condact")
	assert.Contains(t, out, "cannot read hook directory")
	assert.Contains(t, out, `"dir": "/e/etc/conda/activate.d"`)
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&buf, true)

	log.Debug("activation planned", zap.Int("ops", 3))
	_ = log.Sync()

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "activation planned")
}
