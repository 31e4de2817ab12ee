package vdf

import (
	"bytes"
	"encoding/binary"
)

// Shortcut is a non-Steam library entry found in shortcuts.vdf.
type Shortcut struct {
	AppID uint32
	Name  string
}

// appIDWindow bounds how far past a name marker the scanner looks for the
// matching appid field.
const appIDWindow = 500

var (
	nameMarkers = [][]byte{
		[]byte("\x01AppName\x00"),
		[]byte("\x01appname\x00"),
	}
	appIDMarkers = [][]byte{
		[]byte("\x02appid\x00"),
		[]byte("\x02AppID\x00"),
	}
)

// ParseShortcuts extracts name/appid pairs from a binary shortcuts.vdf
// buffer.
//
// This is a best-effort byte scanner, not a structural parser. For every
// AppName field it reads the NUL-terminated name and then looks for an appid
// field within the following 500 bytes, reading it as a little-endian
// uint32. Known limitations:
//   - the name field must come before its appid field inside the window;
//     entries written the other way round are skipped
//   - a name with no NUL terminator stops the scan; entries after it are lost
//
// Unknown fields around the two we need are ignored.
func ParseShortcuts(buf []byte) []Shortcut {
	var out []Shortcut
	cursor := 0

	for cursor < len(buf) {
		markerPos, markerLen := indexAny(buf[cursor:], nameMarkers)
		if markerPos < 0 {
			break
		}
		markerPos += cursor
		nameStart := markerPos + markerLen

		nameLen := bytes.IndexByte(buf[nameStart:], 0)
		if nameLen < 0 {
			break
		}
		name := string(buf[nameStart : nameStart+nameLen])
		cursor = nameStart + nameLen + 1

		windowEnd := markerPos + appIDWindow
		if windowEnd > len(buf) {
			windowEnd = len(buf)
		}
		idPos, idLen := indexAny(buf[markerPos:windowEnd], appIDMarkers)
		if idPos < 0 {
			continue
		}
		valueStart := markerPos + idPos + idLen
		if valueStart+4 > len(buf) {
			continue
		}

		out = append(out, Shortcut{
			AppID: binary.LittleEndian.Uint32(buf[valueStart : valueStart+4]),
			Name:  name,
		})
	}

	return out
}

// indexAny returns the earliest match of any marker in buf and its length.
func indexAny(buf []byte, markers [][]byte) (int, int) {
	best, bestLen := -1, 0
	for _, m := range markers {
		if i := bytes.Index(buf, m); i >= 0 && (best < 0 || i < best) {
			best, bestLen = i, len(m)
		}
	}
	return best, bestLen
}
