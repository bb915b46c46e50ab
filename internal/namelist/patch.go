package namelist

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/edit"
)

// BackupSuffix replaces the extension of a namelist file when it is backed
// up before patching.
const BackupSuffix = ".nml~"

// Patcher applies edits to namelist files.
type Patcher struct{}

// NewPatcher returns a namelist Patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// BackupSuffix implements mapping.Patcher.
func (p *Patcher) BackupSuffix() string { return BackupSuffix }

// Patch implements mapping.Patcher.
func (p *Patcher) Patch(ctx context.Context, src []byte, groups edit.Groups) ([]byte, error) {
	return Patch(ctx, src, groups)
}

type replacement struct {
	start, end int
	text       string
}

// Patch rewrites the values of the given keys in src. Keys missing from an
// existing group are added before its terminator; missing groups are
// appended to the end of the file.
func Patch(ctx context.Context, src []byte, groups edit.Groups) ([]byte, error) {
	logger := ctxlog.FromContext(ctx)

	f, err := Parse(src)
	if err != nil {
		return nil, err
	}

	var reps []replacement
	var appendix strings.Builder

	for _, name := range groups.Names() {
		keys := groups.Keys(name)
		g := f.Group(name)
		if g == nil {
			logger.Debug("Appending new namelist group.", "group", name, "keys", len(keys))
			fmt.Fprintf(&appendix, "&%s\n", name)
			for _, key := range keys {
				text, err := FormatValue(groups[name][key], KindUnknown)
				if err != nil {
					return nil, fmt.Errorf("%s%%%s: %w", name, key, err)
				}
				fmt.Fprintf(&appendix, "    %s = %s\n", key, text)
			}
			appendix.WriteString("/\n")
			continue
		}

		var added strings.Builder
		for _, key := range keys {
			value := groups[name][key]
			entries := g.Lookup(key)
			if len(entries) == 0 {
				text, err := FormatValue(value, KindUnknown)
				if err != nil {
					return nil, fmt.Errorf("%s%%%s: %w", name, key, err)
				}
				logger.Debug("Adding key to namelist group.", "group", name, "key", key)
				fmt.Fprintf(&added, "    %s = %s\n", key, text)
				continue
			}
			for _, e := range entries {
				text, err := FormatValue(value, e.Kind)
				if err != nil {
					return nil, fmt.Errorf("%s%%%s: %w", name, key, err)
				}
				if e.Start == e.End && e.Start > 0 && src[e.Start-1] == '=' {
					text = " " + text
				}
				reps = append(reps, replacement{start: e.Start, end: e.End, text: text})
			}
		}
		if added.Len() > 0 {
			reps = append(reps, insertBeforeTerminator(src, g, added.String()))
		}
	}

	sort.SliceStable(reps, func(i, j int) bool { return reps[i].start < reps[j].start })

	var out bytes.Buffer
	out.Grow(len(src) + appendix.Len())
	last := 0
	for _, r := range reps {
		if r.start < last {
			return nil, fmt.Errorf("overlapping namelist edits at offset %d", r.start)
		}
		out.Write(src[last:r.start])
		out.WriteString(r.text)
		last = r.end
	}
	out.Write(src[last:])

	if appendix.Len() > 0 {
		if out.Len() > 0 && !bytes.HasSuffix(out.Bytes(), []byte("\n")) {
			out.WriteByte('\n')
		}
		out.WriteString(appendix.String())
	}
	return out.Bytes(), nil
}

// insertBeforeTerminator places lines on their own lines just ahead of the
// group terminator.
func insertBeforeTerminator(src []byte, g *Group, lines string) replacement {
	lineStart := bytes.LastIndexByte(src[:g.End], '\n') + 1
	if len(bytes.TrimSpace(src[lineStart:g.End])) == 0 {
		return replacement{start: lineStart, end: lineStart, text: lines}
	}
	return replacement{start: g.End, end: g.End, text: "\n" + lines}
}
