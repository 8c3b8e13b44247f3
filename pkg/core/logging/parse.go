// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     logging
// Description: Parsing of log lines written by the JSON and text formatters
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// textLineRegex matches lines of the TextFormatter:
// 2006-01-02 15:04:05 [INFO] {name} (req=id) message [k=v] error="..."
var textLineRegex = regexp.MustCompile(
	`^(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}) \[([A-Z]{4})\](?: \{([^}]*)\})?(?: \(req=([^)]*)\))? (.*)$`)

// ParseLine parses one line written by a Formatter. Both formats are
// recognized. Fields of text lines stay part of the message.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, "{") {
		return parseJSONLine(line)
	}
	return parseTextLine(line)
}

func parseJSONLine(line string) (Entry, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		return Entry{}, fmt.Errorf("invalid json log line: %w", err)
	}

	var entry Entry
	if ts, ok := data["timestamp"].(string); ok {
		entry.Timestamp, _ = time.Parse(time.RFC3339, ts)
	}
	if lvl, ok := data["level"].(string); ok {
		level, err := ParseLevel(lvl)
		if err != nil {
			return Entry{}, err
		}
		entry.Level = level
	}
	entry.Message, _ = data["message"].(string)
	entry.Logger, _ = data["logger"].(string)
	entry.RequestID, _ = data["request_id"].(string)
	if msg, ok := data["error"].(string); ok {
		entry.Error = errors.New(msg)
	}

	for _, k := range []string{"timestamp", "level", "message", "logger", "request_id", "error"} {
		delete(data, k)
	}
	if len(data) > 0 {
		entry.Fields = Fields(data)
	}
	return entry, nil
}

func parseTextLine(line string) (Entry, error) {
	m := textLineRegex.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, fmt.Errorf("unrecognized log line: %q", line)
	}

	ts, err := time.ParseInLocation("2006-01-02 15:04:05", m[1], time.Local)
	if err != nil {
		return Entry{}, err
	}
	level, err := parseShortLevel(m[2])
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Timestamp: ts,
		Level:     level,
		Logger:    m[3],
		RequestID: m[4],
		Message:   m[5],
	}, nil
}

func parseShortLevel(s string) (Level, error) {
	for _, l := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError} {
		if l.ShortString() == s {
			return l, nil
		}
	}
	return LevelInfo, fmt.Errorf("invalid log level: %q", s)
}
