// Package parser parses web-server access log lines into structured events.
//
// The expected format is the common Nginx access log with an optional
// trailing response time:
//
//	192.168.1.1 - - [29/Nov/2021:12:34:56 +0000] "GET /page.html HTTP/1.1" 200 2326 "http://referrer.com" "Mozilla/5.0 ..." 0.002
//
// Parsing is all-or-nothing: a line that fails the pattern match, the
// timestamp parse, or the status/bytes integer parse is rejected as a whole.
// No partial events are ever produced.
package parser

import (
	"regexp"
	"strconv"
	"time"
)

// Event is one parsed access log record. Immutable once constructed.
type Event struct {
	// Timestamp is normalized to UTC.
	Timestamp time.Time

	// IP is the client source address.
	IP string

	// Method is the HTTP method (GET, POST, ...).
	Method string

	// Path is the request path.
	Path string

	// Status is the HTTP response status code.
	Status int

	// ResponseTime is the upstream response time in seconds.
	// 0.0 when the field is absent from the line.
	ResponseTime float64

	// UserAgent is the raw user-agent string.
	UserAgent string

	// BytesSent is the response body size in bytes.
	BytesSent uint64
}

// timestampLayout matches the common log format time,
// e.g. "29/Nov/2021:12:34:56 +0000".
const timestampLayout = "02/Jan/2006:15:04:05 -0700"

// lineRe captures, in order: address, timestamp, method, path, status,
// bytes, referrer (unused), user agent, and the optional response time.
var lineRe = regexp.MustCompile(
	`^(\S+) \S+ \S+ \[([^\]]+)\] "(\S+) (\S+)[^"]*" (\d+) (\d+) "([^"]*)" "([^"]*)"(?: (\d+\.\d+))?`)

// Parse parses one raw log line. It returns ok=false for any line that does
// not fully conform to the grammar; it never panics.
func Parse(line string) (Event, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Event{}, false
	}

	ts, err := time.Parse(timestampLayout, m[2])
	if err != nil {
		return Event{}, false
	}

	status, err := strconv.ParseUint(m[5], 10, 16)
	if err != nil {
		return Event{}, false
	}

	bytes, err := strconv.ParseUint(m[6], 10, 64)
	if err != nil {
		return Event{}, false
	}

	// The trailing response time is optional. The capture group only admits
	// "\d+.\d+", so ParseFloat cannot fail here; the fallback keeps the
	// documented default anyway.
	var responseTime float64
	if m[9] != "" {
		responseTime, _ = strconv.ParseFloat(m[9], 64)
	}

	return Event{
		Timestamp:    ts.UTC(),
		IP:           m[1],
		Method:       m[3],
		Path:         m[4],
		Status:       int(status),
		ResponseTime: responseTime,
		UserAgent:    m[8],
		BytesSent:    bytes,
	}, true
}
