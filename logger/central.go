// Package logger implements a single central, in-memory log for the chipset
// core. Every component logs through this package instead of fmt.Println,
// so a host can retrieve, tail, or echo diagnostic output without the core
// depending on any particular presentation.
package logger

import "io"

// maxCentral bounds the number of entries kept in memory. Older entries are
// discarded once the limit is reached.
const maxCentral = 2048

var central = newLogger(maxCentral)

// Log adds an entry to the central log if perm allows it.
func Log(perm Permission, tag, detail string) {
	if perm == nil || perm == Allow || perm.AllowLogging() {
		central.log(tag, detail)
	}
}

// Logf adds a formatted entry to the central log if perm allows it.
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	if perm == nil || perm == Allow || perm.AllowLogging() {
		central.logf(tag, detail, args...)
	}
}

// Clear removes all entries from the central log.
func Clear() {
	central.clear()
}

// Write writes every entry in the central log to output.
func Write(output io.Writer) {
	central.write(output)
}

// WriteRecent writes only the entries added since the last call to
// WriteRecent (or SetEcho with writeRecent true).
func WriteRecent(output io.Writer) {
	central.writeRecent(output)
}

// Tail writes the last number entries to output.
func Tail(output io.Writer, number int) {
	central.tail(output, number)
}

// SetEcho arranges for every future log entry to also be written to output
// as it is made. Passing a nil output disables echoing.
func SetEcho(output io.Writer, writeRecent bool) {
	central.setEcho(output, writeRecent)
}

// BorrowLog gives f temporary read access to the full list of log entries.
func BorrowLog(f func([]Entry)) {
	central.borrowLog(f)
}
