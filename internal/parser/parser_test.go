package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRootRecordNoDirectives(t *testing.T) {
	r := Parse("bar")
	require.Len(t, r.Events, 1)
	assert.Equal(t, Emit, r.Events[0].Kind)
	assert.Equal(t, "bar", r.Events[0].Message)
}

func TestParseEmptyTemplateNoRecord(t *testing.T) {
	r := Parse("")
	assert.Empty(t, r.Events)
}

func TestParseSingleDescent(t *testing.T) {
	r := Parse("%<1>bar", "foo")
	require.Len(t, r.Events, 2)
	assert.Equal(t, Descend, r.Events[0].Kind)
	assert.Equal(t, "foo", r.Events[0].Name)
	assert.Equal(t, Emit, r.Events[1].Kind)
	assert.Equal(t, "bar", r.Events[1].Message)
}

func TestParseThreeLevelsNested(t *testing.T) {
	r := Parse("%<1>%<1>%<1>qux", "foo", "bar", "baz")
	require.Len(t, r.Events, 4)
	names := []string{r.Events[0].Name, r.Events[1].Name, r.Events[2].Name}
	assert.Equal(t, []string{"foo", "bar", "baz"}, names)
	assert.Equal(t, Emit, r.Events[3].Kind)
	assert.Equal(t, "qux", r.Events[3].Message)
}

func TestParseDirectiveFirstEmitsNoRootRecord(t *testing.T) {
	r := Parse("%<1>bar", "foo")
	assert.Equal(t, Descend, r.Events[0].Kind, "no record should precede the first descent")
}

func TestParseHeaderPrefix(t *testing.T) {
	r := Parse("$$%s$$%s$$%d$$hello", "main.go", "doStuff", 42)
	require.True(t, r.Header.Present)
	assert.Equal(t, "main.go", r.Header.FileName)
	assert.Equal(t, "doStuff", r.Header.FuncName)
	assert.Equal(t, 42, r.Header.FileLine)
	require.Len(t, r.Events, 1)
	assert.Equal(t, "hello", r.Events[0].Message)
}

func TestParseHeaderAbsentLeavesFieldsUnset(t *testing.T) {
	r := Parse("hello")
	assert.False(t, r.Header.Present)
}

func TestParsePrintfFragmentConsumesArgs(t *testing.T) {
	r := Parse("%<1>count=%d", "foo", 7)
	require.Len(t, r.Events, 2)
	assert.Equal(t, "count=7", r.Events[1].Message)
}

func TestParseTemplateTooLongDropped(t *testing.T) {
	long := make([]byte, MaxTemplateLen+1)
	for i := range long {
		long[i] = 'a'
	}
	r := Parse(string(long))
	assert.True(t, r.Dropped)
	assert.Empty(t, r.Events)
}

func TestParseMessageCappedAtMaxLen(t *testing.T) {
	long := make([]byte, MaxMessageLen+50)
	for i := range long {
		long[i] = 'x'
	}
	r := Parse("%s", string(long))
	require.Len(t, r.Events, 1)
	assert.Len(t, r.Events[0].Message, MaxMessageLen)
}

func TestParseUnknownPercentDirectiveTreatedLiterally(t *testing.T) {
	r := Parse("%<2>literal")
	require.Len(t, r.Events, 1)
	assert.Equal(t, "%<2>literal", r.Events[0].Message)
}

func TestParseLiteralBeforeDirectiveEmitsAtRootThenChild(t *testing.T) {
	r := Parse("started%<1>session", "user123")
	require.Len(t, r.Events, 3)
	assert.Equal(t, Emit, r.Events[0].Kind, "text before the first directive flushes as a root-level record")
	assert.Equal(t, "started", r.Events[0].Message)
	assert.Equal(t, Descend, r.Events[1].Kind)
	assert.Equal(t, "user123", r.Events[1].Name)
	assert.Equal(t, Emit, r.Events[2].Kind)
	assert.Equal(t, "session", r.Events[2].Message)
}
