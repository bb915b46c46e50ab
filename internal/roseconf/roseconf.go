// Package roseconf patches Rose application configuration files
// (rose-app.conf), where each namelist is a "[namelist:name]" section of
// plain key=value lines.
package roseconf

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/zclconf/go-cty/cty"
)

// BackupSuffix replaces the extension of a configuration file when it is
// backed up before patching.
const BackupSuffix = ".conf~"

// ErrType is returned for values that cannot be written to a Rose
// configuration: anything but booleans and numbers.
var ErrType = errors.New("unsupported value type")

// Patcher applies edits to Rose configuration files.
type Patcher struct{}

// NewPatcher returns a Rose configuration Patcher.
func NewPatcher() *Patcher {
	return &Patcher{}
}

// BackupSuffix implements mapping.Patcher.
func (p *Patcher) BackupSuffix() string { return BackupSuffix }

// Patch implements mapping.Patcher.
func (p *Patcher) Patch(ctx context.Context, src []byte, groups edit.Groups) ([]byte, error) {
	out, err := Patch(ctx, string(src), groups)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Header returns the section header line of namelist group.
func Header(group string) string {
	return "[namelist:" + group + "]"
}

// section locates the header of group at the start of a line and returns the
// span from the header up to the next section header or end of input.
func section(config, group string) (int, int, bool) {
	header := Header(group)
	start := -1
	for from := 0; from < len(config); {
		i := strings.Index(config[from:], header)
		if i < 0 {
			break
		}
		i += from
		if i == 0 || config[i-1] == '\n' {
			start = i
			break
		}
		from = i + 1
	}
	if start < 0 {
		return 0, 0, false
	}
	end := len(config)
	if next := strings.Index(config[start+len(header):], "\n["); next >= 0 {
		end = start + len(header) + next + 1
	}
	return start, end, true
}

// Patch replaces the right-hand side of "key=value" lines inside the named
// sections. Text outside the edited sections is preserved byte-for-byte; keys
// and sections that do not exist are left alone.
func Patch(ctx context.Context, config string, groups edit.Groups) (string, error) {
	logger := ctxlog.FromContext(ctx)

	for _, group := range groups.Names() {
		start, end, ok := section(config, group)
		if !ok {
			logger.Warn("Section not found in configuration.", "section", Header(group))
			continue
		}
		sect := config[start:end]
		for _, key := range groups.Keys(group) {
			re, err := regexp.Compile(`(?m)^` + regexp.QuoteMeta(key) + `=(.*)$`)
			if err != nil {
				return "", err
			}
			loc := re.FindStringSubmatchIndex(sect)
			if loc == nil {
				logger.Debug("Key not present in section, left untouched.", "section", group, "key", key)
				continue
			}
			newval, err := formatValue(groups[group][key], sect[loc[2]:loc[3]])
			if err != nil {
				return "", fmt.Errorf("cannot handle value for %s[%s]: %w", group, key, err)
			}
			sect = sect[:loc[2]] + newval + sect[loc[3]:]
		}
		config = config[:start] + sect + config[end:]
	}
	return config, nil
}

// formatValue renders v for the right-hand side of a key=value line. Numbers
// are written as reals when the existing literal is a real or when they are
// not integral.
func formatValue(v cty.Value, old string) (string, error) {
	if v.IsNull() || !v.IsKnown() {
		return "", ErrType
	}
	switch v.Type() {
	case cty.Bool:
		return namelist.FormatLogical(v.True()), nil
	case cty.Number:
		return namelist.FormatNumber(v.AsBigFloat(), looksReal(old)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrType, v.Type().FriendlyName())
}

func looksReal(literal string) bool {
	s := strings.TrimSpace(literal)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return false
	}
	_, err := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(s), 64)
	return err == nil
}
