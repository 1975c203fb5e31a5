package logging

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDebug_DisabledInProduction(t *testing.T) {
	var buf bytes.Buffer

	logger := log.NewWithOptions(&buf, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(log.DebugLevel)

	appLogger := &AppLogger{
		logger: logger,
		debug:  false,
	}

	appLogger.Debug("debug message that should not appear")

	output := buf.String()
	if strings.Contains(output, "debug message that should not appear") {
		t.Errorf("Expected debug message to be suppressed in production mode, got: %s", output)
	}
}

func TestDebugObject(t *testing.T) {
	logger, buf := NewTestLogger()

	testObj := struct {
		Name  string
		Value int
	}{
		Name:  "test",
		Value: 42,
	}

	logger.DebugObject("test_object", testObj)

	output := buf.String()
	if !strings.Contains(output, "Object dump") {
		t.Errorf("Expected log output to contain 'Object dump', got: %s", output)
	}
	if !strings.Contains(output, "test_object") {
		t.Errorf("Expected log output to contain object name, got: %s", output)
	}
	if !strings.Contains(output, "42") {
		t.Errorf("Expected log output to contain object data, got: %s", output)
	}
}

func TestLogPerformance(t *testing.T) {
	logger, buf := NewTestLogger()

	start := time.Now()
	time.Sleep(1 * time.Millisecond)
	logger.LogPerformance("analyze", start)

	output := buf.String()
	if !strings.Contains(output, "Performance") {
		t.Errorf("Expected log output to contain 'Performance', got: %s", output)
	}
	if !strings.Contains(output, "analyze") {
		t.Errorf("Expected log output to contain operation name, got: %s", output)
	}
	if !strings.Contains(output, "duration") {
		t.Errorf("Expected log output to contain duration, got: %s", output)
	}
}

func TestWithPrefix(t *testing.T) {
	logger, buf := NewTestLogger()

	child := logger.WithPrefix("scanner")
	child.Info("block rejected", "file", "a.ts")

	output := buf.String()
	if !strings.Contains(output, "Test/scanner") {
		t.Errorf("Expected prefixed output, got: %s", output)
	}
	if !strings.Contains(output, "a.ts") {
		t.Errorf("Expected keyvals in output, got: %s", output)
	}
	if !child.IsDebug() {
		t.Error("Expected child logger to inherit debug flag")
	}
}

func TestNewWriterLogger(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewWriterLogger(&buf, false)
	quiet.Info("hidden")
	quiet.Debug("hidden too")
	if buf.Len() != 0 {
		t.Errorf("Expected quiet logger to drop info and debug, got: %s", buf.String())
	}

	quiet.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected warning in output, got: %s", buf.String())
	}

	buf.Reset()
	verbose := NewWriterLogger(&buf, true)
	verbose.Debug("details")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("Expected debug output from verbose logger, got: %s", buf.String())
	}
}

func TestNewAppLogger_ProductionMode(t *testing.T) {
	original := os.Getenv("DEBUG")
	defer os.Setenv("DEBUG", original)

	os.Unsetenv("DEBUG")

	logger := NewAppLogger()
	if logger == nil {
		t.Fatal("Expected logger to be created")
	}
	if logger.IsDebug() {
		t.Error("Expected debug to be false in production mode")
	}
}

func TestNewAppLogger_DebugMode(t *testing.T) {
	original := os.Getenv("DEBUG")
	defer os.Setenv("DEBUG", original)

	dir := t.TempDir()
	t.Chdir(dir)
	os.Setenv("DEBUG", "1")

	logger := NewAppLogger()
	if !logger.IsDebug() {
		t.Error("Expected debug to be true when DEBUG is set")
	}

	if _, err := os.Stat("mcpscan.log"); err != nil {
		t.Errorf("Expected log file to be created: %v", err)
	}
}

func TestGetDefault_Singleton(t *testing.T) {
	var wg sync.WaitGroup
	loggers := make([]*AppLogger, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			loggers[idx] = GetDefault()
		}(i)
	}
	wg.Wait()

	for i := 1; i < 10; i++ {
		if loggers[i] != loggers[0] {
			t.Error("Expected GetDefault to return the same instance")
		}
	}
}
