package tree

import (
	"time"

	"github.com/tononidis/cJSONLogger/internal/severity"
)

// timeLayout renders a wall-clock instant as YYYY-MM-DD HH:MM:SS.NNNNNNNNN.
const timeLayout = "2006-01-02 15:04:05.000000000"

// Record is an immutable log entry once constructed. FileLine of 0 means
// the caller omitted it; FileName/FuncName of "" mean the same.
type Record struct {
	Time     string
	Level    severity.Level
	FileName string
	FuncName string
	FileLine int
	Message  string
}

// NewRecord stamps the current wall-clock time and builds a Record.
func NewRecord(level severity.Level, fileName, funcName string, fileLine int, message string) Record {
	return Record{
		Time:     time.Now().Format(timeLayout),
		Level:    level,
		FileName: fileName,
		FuncName: funcName,
		FileLine: fileLine,
		Message:  message,
	}
}
