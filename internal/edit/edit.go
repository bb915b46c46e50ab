package edit

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Edit is a single assignment of Value to Key inside namelist Group of File.
// File is relative to a run directory.
type Edit struct {
	File  string
	Group string
	Key   string
	Value cty.Value
}

func (e Edit) String() string {
	return fmt.Sprintf("%s:%s.%s=%s", e.File, e.Group, e.Key, FormatValue(e.Value))
}

// Groups maps group -> key -> value for a single file.
type Groups map[string]map[string]cty.Value

// Names returns the group names in sorted order.
func (g Groups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns the keys of group in sorted order.
func (g Groups) Keys(group string) []string {
	keys := make([]string, 0, len(g[group]))
	for key := range g[group] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns value to group.key, replacing any previous value.
func (g Groups) Set(group, key string, value cty.Value) {
	if g[group] == nil {
		g[group] = make(map[string]cty.Value)
	}
	g[group][key] = value
}

// EditSet maps file -> group -> key -> value.
type EditSet map[string]Groups

// New folds edits into a fresh EditSet in order.
func New(edits ...Edit) EditSet {
	s := make(EditSet)
	for _, e := range edits {
		s.Add(e)
	}
	return s
}

// Add records e. A later edit targeting the same (file, group, key) wins.
// It reports whether an earlier value was overwritten.
func (s EditSet) Add(e Edit) bool {
	groups, ok := s[e.File]
	if !ok {
		groups = make(Groups)
		s[e.File] = groups
	}
	_, existed := groups[e.Group][e.Key]
	groups.Set(e.Group, e.Key, e.Value)
	return existed
}

// Files returns the target files in sorted order.
func (s EditSet) Files() []string {
	files := make([]string, 0, len(s))
	for file := range s {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of distinct (file, group, key) targets.
func (s EditSet) Len() int {
	n := 0
	for _, groups := range s {
		for _, keys := range groups {
			n += len(keys)
		}
	}
	return n
}

// Edits flattens the set back into edits ordered by file, group and key.
func (s EditSet) Edits() []Edit {
	var edits []Edit
	for _, file := range s.Files() {
		groups := s[file]
		for _, group := range groups.Names() {
			for _, key := range groups.Keys(group) {
				edits = append(edits, Edit{File: file, Group: group, Key: key, Value: groups[group][key]})
			}
		}
	}
	return edits
}

// Equal reports whether both sets hold exactly the same targets with
// identical values.
func (s EditSet) Equal(other EditSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for file, groups := range s {
		for group, keys := range groups {
			for key, value := range keys {
				o, ok := other[file][group][key]
				if !ok || !o.RawEquals(value) {
					return false
				}
			}
		}
	}
	return true
}
