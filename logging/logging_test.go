package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
)

func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newImpl("impl", DEBUG, true, NewWriterAppender(notStdout))

	logger.Info("info log")
	output, err := notStdout.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)
	parts := strings.Split(strings.TrimSuffix(output, "\n"), "\t")
	// time, level, name, caller, message
	test.That(t, parts, test.ShouldHaveLength, 5)
	test.That(t, parts[1], test.ShouldEqual, "INFO")
	test.That(t, parts[2], test.ShouldEqual, "impl")
	test.That(t, parts[3], test.ShouldStartWith, "logging/logging_test.go:")
	test.That(t, parts[4], test.ShouldEqual, "info log")

	logger.Debugw("structured", "joint", 3, "angle", 0.5)
	output, err = notStdout.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)
	test.That(t, output, test.ShouldContainSubstring, `{"joint": 3, "angle": 0.5}`)
}

func TestLevelFiltering(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(WARN)
	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warnf("kept %d", 1)
	logger.Errorw("kept", "n", 2)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	test.That(t, logs.FilterMessage("kept 1").Len(), test.ShouldEqual, 1)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("control").Sublogger("loop")
	sub.Info("tick")

	entries := logs.All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "control.loop")
}

func TestAsZap(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(INFO)
	zl := logger.AsZap().With("component", "sampler")
	zl.Debug("dropped")
	zl.Infow("sampled", "points", 10)

	test.That(t, logs.Len(), test.ShouldEqual, 1)
	fields := logs.All()[0].ContextMap()
	test.That(t, fields["component"], test.ShouldEqual, "sampler")
	test.That(t, fields["points"], test.ShouldEqual, int64(10))
}

func TestFileAppender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "armsim.log")
	appender, closer := NewFileAppender(path)
	logger := NewBlankLogger("file")
	logger.AddAppender(appender)
	logger.Warn("to disk")
	test.That(t, closer.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, "to disk")
	test.That(t, string(contents), test.ShouldContainSubstring, "WARN")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}
	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestUnpairedKey(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("odd", "joint", 2, "angle")

	fields := logs.All()[0].ContextMap()
	test.That(t, fields["joint"], test.ShouldEqual, int64(2))
	test.That(t, fields["angle"], test.ShouldEqual, "<missing value>")
}

func TestSubloggerSharesAppenders(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewBlankLogger("armsim")
	logger.AddAppender(NewWriterAppender(buf))
	logger.SetLevel(WARN)

	sub := logger.Sublogger("config")
	test.That(t, sub.GetLevel(), test.ShouldEqual, WARN)
	sub.Info("dropped")
	sub.Warn("kept")
	test.That(t, buf.String(), test.ShouldNotContainSubstring, "dropped")
	test.That(t, buf.String(), test.ShouldContainSubstring, "armsim.config")
}
