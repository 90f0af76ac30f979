// Package procfs reads the kernel mount table exposed under /proc.
package procfs

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"pkt.systems/pslog"
)

// DefaultMountInfoPath is the mount table of the calling process.
const DefaultMountInfoPath = "/proc/self/mountinfo"

// OptionSet is an unordered set of comma separated mount options.
type OptionSet map[string]struct{}

// Has reports whether name is present in the set.
func (s OptionSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// MountRecord is one line of a mountinfo file.
type MountRecord struct {
	ID           int
	ParentID     int
	Device       string
	Root         string
	MountPoint   string
	MountOptions OptionSet
	Optional     []string
	FSType       string
	Source       string
	SuperOptions OptionSet
}

// ReadMountTable reads and parses the mount table at path. An unreadable
// table yields no records.
func ReadMountTable(ctx context.Context, fsys afero.Fs, path string) []MountRecord {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		pslog.Ctx(ctx).Debug("mount table unreadable", "path", path, "err", err)
		return nil
	}
	return ParseMountInfo(ctx, bytes.NewReader(data))
}

// ParseMountInfo parses mountinfo formatted lines. Lines that cannot be
// parsed are skipped.
func ParseMountInfo(ctx context.Context, r io.Reader) []MountRecord {
	log := pslog.Ctx(ctx)
	var records []MountRecord
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		record, ok := parseMountLine(line)
		if !ok {
			log.Debug("mount table line skipped", "line", lineNo)
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		log.Debug("mount table scan stopped", "line", lineNo, "err", err)
	}
	return records
}

func parseMountLine(line string) (MountRecord, bool) {
	fields := strings.Fields(line)
	sep := -1
	for i := 6; i < len(fields); i++ {
		if fields[i] == "-" {
			sep = i
			break
		}
	}
	if sep == -1 || sep+1 >= len(fields) {
		return MountRecord{}, false
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return MountRecord{}, false
	}
	parent, err := strconv.Atoi(fields[1])
	if err != nil {
		return MountRecord{}, false
	}
	record := MountRecord{
		ID:           id,
		ParentID:     parent,
		Device:       fields[2],
		Root:         unescapeOctal(fields[3]),
		MountPoint:   unescapeOctal(fields[4]),
		MountOptions: splitOptions(fields[5]),
		FSType:       fields[sep+1],
	}
	if sep > 6 {
		record.Optional = append([]string(nil), fields[6:sep]...)
	}
	post := fields[sep+1:]
	if len(post) > 1 {
		record.Source = unescapeOctal(post[1])
	}
	if len(post) > 2 {
		record.SuperOptions = splitOptions(post[2])
	} else {
		record.SuperOptions = OptionSet{}
	}
	return record, true
}

func splitOptions(value string) OptionSet {
	set := OptionSet{}
	for _, opt := range strings.Split(value, ",") {
		if opt == "" {
			continue
		}
		set[opt] = struct{}{}
	}
	return set
}

// unescapeOctal decodes the \ooo escapes the kernel uses for whitespace and
// backslashes in paths.
func unescapeOctal(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] == '\\' && i+3 < len(value) && isOctal(value[i+1]) && isOctal(value[i+2]) && isOctal(value[i+3]) {
			n, err := strconv.ParseUint(value[i+1:i+4], 8, 8)
			if err == nil {
				b.WriteByte(byte(n))
				i += 3
				continue
			}
		}
		b.WriteByte(value[i])
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}
