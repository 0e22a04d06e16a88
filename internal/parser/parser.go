// Package parser decodes the logger's single-call path+format
// mini-language: a template string that interleaves tree-descent
// directives with printf-style message fragments, plus the variadic
// argument list those directives and fragments consume from.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxTemplateLen is the byte-length ceiling above which a template is
// rejected outright, before any parsing is attempted.
const MaxTemplateLen = 255

// MaxMessageLen is the ceiling on a single rendered message.
const MaxMessageLen = 255

// directiveToken is the literal node-descent directive: a four-byte
// token rather than a single digit after '%', since every concrete
// example of the format uses the full "%<1>" form.
const directiveToken = "%<1>"

// HeaderPrefix is the literal prefix macros prepend to bind
// FileName/FuncName/FileLine onto the record.
const HeaderPrefix = "$$%s$$%s$$%d$$"

const headerPrefix = HeaderPrefix

// EventKind distinguishes the two things a parse can ask the tree to do.
type EventKind int

const (
	// Descend asks the tree to move into (creating if absent) a named child.
	Descend EventKind = iota
	// Emit asks the tree to append a record at the current node.
	Emit
)

// Event is one step of a parsed template: either a descent into a named
// child, or a record to append at the node current at that point.
type Event struct {
	Kind    EventKind
	Name    string // valid when Kind == Descend
	Message string // valid when Kind == Emit, already formatted and capped
}

// Header carries the optional file/func/line binding consumed from the
// macro-prepended prefix.
type Header struct {
	Present  bool
	FileName string
	FuncName string
	FileLine int
}

// Result is the full decoding of one Log call.
type Result struct {
	Dropped bool // true if the raw template exceeded MaxTemplateLen
	Header  Header
	Events  []Event
}

// verbPattern matches one printf conversion (including the literal %%),
// used only to count how many variadic arguments a literal fragment
// consumes before it is handed to fmt.Sprintf.
var verbPattern = regexp.MustCompile(`%[-+ 0#]*[0-9]*(\.[0-9]+)?[a-zA-Z%]`)

// Parse decodes template against args, per the component design in
// §4.2: the macro header prefix is consumed first if present, then the
// template is scanned byte-by-byte for the literal directiveToken,
// flushing any accumulated literal/printf fragment as a record before
// each descent and consuming one variadic argument as the child name.
func Parse(template string, args ...interface{}) Result {
	if len(template) > MaxTemplateLen {
		return Result{Dropped: true}
	}

	cursor := 0 // index into args not yet consumed

	var header Header
	if strings.HasPrefix(template, headerPrefix) {
		if cursor+3 <= len(args) {
			header = Header{
				Present:  true,
				FileName: toString(args[cursor]),
				FuncName: toString(args[cursor+1]),
				FileLine: toInt(args[cursor+2]),
			}
			cursor += 3
		}
		template = template[len(headerPrefix):]
	}

	var events []Event
	var fragment strings.Builder

	flush := func() {
		if fragment.Len() == 0 {
			return
		}
		text := fragment.String()
		n := countVerbs(text)
		var msg string
		if n > 0 && cursor+n <= len(args) {
			msg = fmt.Sprintf(text, args[cursor:cursor+n]...)
			cursor += n
		} else if n == 0 {
			msg = text
		} else {
			// Not enough arguments: caller's contract violation (§4.2
			// Failure semantics); format against what remains rather
			// than panic or corrupt the cursor.
			msg = fmt.Sprintf(text, args[cursor:]...)
			cursor = len(args)
		}
		if len(msg) > MaxMessageLen {
			msg = msg[:MaxMessageLen]
		}
		events = append(events, Event{Kind: Emit, Message: msg})
		fragment.Reset()
	}

	i := 0
	for i < len(template) {
		c := template[i]
		if c != '%' {
			fragment.WriteByte(c)
			i++
			continue
		}
		if strings.HasPrefix(template[i:], directiveToken) {
			flush()
			var name string
			if cursor < len(args) {
				name = toString(args[cursor])
				cursor++
			}
			events = append(events, Event{Kind: Descend, Name: name})
			i += len(directiveToken)
			continue
		}
		// Not a node directive: an ordinary '%' byte, append it and
		// resume literal scanning at the next byte.
		fragment.WriteByte(c)
		i++
	}
	flush()

	return Result{Header: header, Events: events}
}

func countVerbs(s string) int {
	matches := verbPattern.FindAllString(s, -1)
	n := 0
	for _, m := range matches {
		if m == "%%" {
			continue
		}
		n++
	}
	return n
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err == nil {
			return parsed
		}
	}
	return 0
}
