package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/lithos/options"
)

// resolvePath walks a parsed tree along path, e.g. "cpw.width" or
// "pads[1].x". An empty path returns root itself.
func resolvePath(root *options.Options, path string) (any, error) {
	var current any = root
	if strings.TrimSpace(path) == "" {
		return current, nil
	}
	for _, segment := range strings.Split(path, ".") {
		name, indexes, err := parseSegment(segment)
		if err != nil {
			return nil, fmt.Errorf("params: %q: %w", path, err)
		}
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, fmt.Errorf("params: %q: %w", path, ErrNotFound)
			}
		}
		for _, idx := range indexes {
			var ok bool
			current, ok = descendList(current, idx)
			if !ok {
				return nil, fmt.Errorf("params: %q: %w", path, ErrNotFound)
			}
		}
	}
	return current, nil
}

func parseSegment(segment string) (string, []int, error) {
	name := segment
	var indexes []int
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				return "", nil, fmt.Errorf("unexpected %q", rest)
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", nil, fmt.Errorf("unclosed index in %q", segment)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil {
				return "", nil, fmt.Errorf("bad index in %q", segment)
			}
			indexes = append(indexes, idx)
			rest = rest[end+1:]
		}
	}
	if name == "" && len(indexes) == 0 {
		return "", nil, fmt.Errorf("empty path segment")
	}
	return name, indexes, nil
}

func descendMap(current any, key string) (any, bool) {
	o, ok := current.(*options.Options)
	if !ok {
		return nil, false
	}
	return o.Get(key)
}

func descendList(current any, idx int) (any, bool) {
	list, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(list) {
		return nil, false
	}
	return list[idx], true
}
