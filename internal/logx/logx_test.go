package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pkt.systems/pslog"
)

func TestWithCgroupAddsFields(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	log := WithCgroup(logger, "v2", "/sys/fs/cgroup")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["cgroup"] != "v2" {
		t.Fatalf("expected cgroup field, got %+v", entry)
	}
	if entry["cgroup_mount"] != "/sys/fs/cgroup" {
		t.Fatalf("expected cgroup_mount field, got %+v", entry)
	}
}

func TestWithCgroupSkipsEmptyMount(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	WithCgroup(logger, "v1", "").Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["cgroup_mount"]; ok {
		t.Fatalf("did not expect cgroup_mount for empty mount point")
	}
}

func TestWithOptionsAndRuntimeFromContext(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	})
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	log := WithRuntime(WithOptions(Ctx(ctx), 0.5, "heap"), "node")
	log.Info("hello")

	entry := capture.firstEntry(t)
	if entry["memory_region"] != "heap" {
		t.Fatalf("expected memory_region field, got %+v", entry)
	}
	if _, ok := entry["memory_fraction"]; !ok {
		t.Fatalf("expected memory_fraction field, got %+v", entry)
	}
	if entry["runtime"] != "node" {
		t.Fatalf("expected runtime field, got %+v", entry)
	}
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
