package procfs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"pkt.systems/pslog"
)

func TestParseMountInfoLine(t *testing.T) {
	raw := "36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue\n"
	records := ParseMountInfo(context.Background(), strings.NewReader(raw))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	want := MountRecord{
		ID:           36,
		ParentID:     35,
		Device:       "98:0",
		Root:         "/mnt1",
		MountPoint:   "/mnt2",
		MountOptions: OptionSet{"rw": {}, "noatime": {}},
		Optional:     []string{"master:1"},
		FSType:       "ext3",
		Source:       "/dev/root",
		SuperOptions: OptionSet{"rw": {}, "errors=continue": {}},
	}
	if diff := cmp.Diff(want, records[0]); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMountInfoSkipsMalformedLines(t *testing.T) {
	raw := strings.Join([]string{
		"",
		"garbage",
		"x 1 0:1 / /a rw - tmpfs tmpfs rw",
		"1 2 0:1 / /no-separator rw tmpfs tmpfs rw",
		"3 2 0:1 / /dangling rw -",
		"4 2 0:26 / /sys/fs/cgroup ro - cgroup2 cgroup2 rw,nsdelegate extra trailing",
		"   ",
		"5 4 0:1 / /no-super rw - tmpfs",
	}, "\n")
	records := ParseMountInfo(context.Background(), strings.NewReader(raw))
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}
	if records[0].MountPoint != "/sys/fs/cgroup" || records[0].FSType != "cgroup2" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[0].SuperOptions.Has("nsdelegate") {
		t.Fatalf("expected nsdelegate super option, got %v", records[0].SuperOptions)
	}
	if records[1].MountPoint != "/no-super" || len(records[1].SuperOptions) != 0 {
		t.Fatalf("unexpected second record: %+v", records[1])
	}
}

func TestParseMountInfoUnescapesPaths(t *testing.T) {
	raw := `7 1 0:40 /with\040space /mnt/with\040space rw - tmpfs tmpfs rw` + "\n"
	records := ParseMountInfo(context.Background(), strings.NewReader(raw))
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].MountPoint != "/mnt/with space" {
		t.Fatalf("expected unescaped mount point, got %q", records[0].MountPoint)
	}
	if records[0].Root != "/with space" {
		t.Fatalf("expected unescaped root, got %q", records[0].Root)
	}
}

func TestUnescapeOctal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/plain", want: "/plain"},
		{in: `/a\040b`, want: "/a b"},
		{in: `/tab\011x`, want: "/tab\tx"},
		{in: `/back\134slash`, want: `/back\slash`},
		{in: `/short\04`, want: `/short\04`},
		{in: `/notoctal\089`, want: `/notoctal\089`},
		{in: `/overflow\777`, want: `/overflow\777`},
	}
	for _, tc := range tests {
		if got := unescapeOctal(tc.in); got != tc.want {
			t.Fatalf("unescapeOctal(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadMountTableFixtures(t *testing.T) {
	tests := []struct {
		fixture string
		records int
		fsType  string
		mount   string
	}{
		{fixture: "cgroup-eks", records: 18, fsType: "cgroup", mount: "/sys/fs/cgroup/memory"},
		{fixture: "cgroupv2-fedora-podman", records: 12, fsType: "cgroup2", mount: "/sys/fs/cgroup"},
	}
	for _, tc := range tests {
		data, err := os.ReadFile(filepath.Join("testdata", tc.fixture, "mountinfo"))
		if err != nil {
			t.Fatalf("%s: read fixture: %v", tc.fixture, err)
		}
		fsys := afero.NewMemMapFs()
		if err := afero.WriteFile(fsys, DefaultMountInfoPath, data, 0o444); err != nil {
			t.Fatalf("%s: write fixture: %v", tc.fixture, err)
		}
		records := ReadMountTable(context.Background(), fsys, DefaultMountInfoPath)
		if len(records) != tc.records {
			t.Fatalf("%s: expected %d records, got %d", tc.fixture, tc.records, len(records))
		}
		found := false
		for _, rec := range records {
			if rec.FSType == tc.fsType && rec.MountPoint == tc.mount {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected %s mount at %s", tc.fixture, tc.fsType, tc.mount)
		}
	}
}

func TestReadMountTableMissingFile(t *testing.T) {
	var buf bytes.Buffer
	logger := pslog.NewWithOptions(&buf, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.DebugLevel,
	})
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	records := ReadMountTable(ctx, afero.NewMemMapFs(), DefaultMountInfoPath)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if !strings.Contains(buf.String(), "mount table unreadable") {
		t.Fatalf("expected debug log, got %q", buf.String())
	}
}
