package tree

import (
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Render serializes the tree as a freshly allocated, pretty-printed JSON
// document. An empty tree renders as "{}". Ownership of the returned
// bytes belongs entirely to the caller; the tree retains none of it.
func (t *Tree) Render() ([]byte, error) {
	raw, err := renderNode(t.Root)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(raw), nil
}

// renderNode renders one node's children and logs array, in insertion
// and append order respectively, using sjson to build the JSON text
// incrementally so that each Set call preserves the order of the keys
// already present.
func renderNode(n *Node) ([]byte, error) {
	buf := []byte("{}")
	var err error

	for _, child := range n.children {
		childBuf, err := renderNode(child)
		if err != nil {
			return nil, fmt.Errorf("tree: render child %q: %w", child.Name, err)
		}
		buf, err = sjson.SetRawBytes(buf, escapeKey(child.Name), childBuf)
		if err != nil {
			return nil, fmt.Errorf("tree: attach child %q: %w", child.Name, err)
		}
	}

	if len(n.Logs) > 0 {
		logsBuf := []byte("[]")
		for _, rec := range n.Logs {
			recBuf, rerr := renderRecord(rec)
			if rerr != nil {
				return nil, fmt.Errorf("tree: render record: %w", rerr)
			}
			logsBuf, rerr = sjson.SetRawBytes(logsBuf, "-1", recBuf)
			if rerr != nil {
				return nil, fmt.Errorf("tree: append record: %w", rerr)
			}
		}
		buf, err = sjson.SetRawBytes(buf, "logs", logsBuf)
		if err != nil {
			return nil, fmt.Errorf("tree: attach logs: %w", err)
		}
	}

	return buf, nil
}

// renderRecord renders a single log record, omitting FileName/FuncName/
// FileLine when the caller didn't supply them, matching the data
// model's "may be absent" / "absent iff 0" invariants.
func renderRecord(rec Record) ([]byte, error) {
	buf := []byte("{}")
	var err error

	buf, err = sjson.SetBytes(buf, "Time", rec.Time)
	if err != nil {
		return nil, err
	}
	buf, err = sjson.SetBytes(buf, "LogLevel", rec.Level.String())
	if err != nil {
		return nil, err
	}
	if rec.FileName != "" {
		buf, err = sjson.SetBytes(buf, "FileName", rec.FileName)
		if err != nil {
			return nil, err
		}
	}
	if rec.FuncName != "" {
		buf, err = sjson.SetBytes(buf, "FuncName", rec.FuncName)
		if err != nil {
			return nil, err
		}
	}
	if rec.FileLine > 0 {
		buf, err = sjson.SetBytes(buf, "FileLine", rec.FileLine)
		if err != nil {
			return nil, err
		}
	}
	buf, err = sjson.SetBytes(buf, "Log", rec.Message)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// escapeKey escapes the gjson/sjson path metacharacters (., *, ?, \) in a
// user-supplied node name so it is treated as a single literal object
// key rather than a nested path.
func escapeKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
