package applog_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vexedit/vex/internal/applog"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", applog.Debug.String())
	assert.Equal(t, "INFO", applog.Info.String())
	assert.Equal(t, "WARN", applog.Warn.String())
	assert.Equal(t, "ERROR", applog.Error.String())
	assert.Equal(t, "UNKNOWN", applog.Level(99).String())
}

func TestLogFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := applog.New(applog.Config{Level: applog.Warn, Output: &buf, Prefix: "vex"})
	log.Infof("ignored")
	assert.Empty(t, buf.String())

	log.Warnf("mode change")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "vex: mode change")
}

func TestSetLevelChangesFilter(t *testing.T) {
	var buf bytes.Buffer
	log := applog.New(applog.Config{Level: applog.Error, Output: &buf, Prefix: "vex"})
	log.Debugf("not yet")
	assert.Empty(t, buf.String())

	log.SetLevel(applog.Debug)
	log.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestWithFieldAppendsStructuredData(t *testing.T) {
	var buf bytes.Buffer
	log := applog.New(applog.Config{Level: applog.Debug, Output: &buf, Prefix: "vex"})
	log = log.WithField("buffer", "*scratch*")
	log.Errorf("parse failed")
	assert.Contains(t, buf.String(), "buffer=*scratch*")
}

func TestWithComponentTagsComponentField(t *testing.T) {
	var buf bytes.Buffer
	log := applog.New(applog.Config{Level: applog.Debug, Output: &buf, Prefix: "vex"})
	log = log.WithComponent("mode")
	log.Debugf("pushed insert")
	assert.Contains(t, buf.String(), "component=mode")
}

func TestDefaultConfigUsesInfoLevel(t *testing.T) {
	cfg := applog.DefaultConfig()
	assert.Equal(t, applog.Info, cfg.Level)
	assert.Equal(t, "vex", cfg.Prefix)
}
