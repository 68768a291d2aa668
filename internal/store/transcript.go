package store

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

// Direction records which way a transcript entry travelled.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Entry is one line of chat history.
type Entry struct {
	Direction Direction `json:"dir"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

// Transcript appends chat history as JSON lines under the home directory.
// It holds no state beyond the path; every call opens the file, so the
// transcript survives crashes up to the last completed line.
type Transcript struct {
	path string
}

// NewTranscript returns a transcript rooted at home.
func NewTranscript(home string) *Transcript {
	return &Transcript{path: filepath.Join(home, "transcript.jsonl")}
}

// Append writes one entry stamped with the current time.
func (t *Transcript) Append(dir Direction, text string) error {
	line, err := json.Marshal(Entry{Direction: dir, Text: text, At: time.Now().UTC()})
	if err != nil {
		return oops.Wrapf(err, "store: encoding transcript entry")
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return oops.Wrapf(err, "store: opening transcript")
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return oops.Wrapf(err, "store: appending transcript entry")
	}
	return nil
}

// Load reads the full history, oldest first. A missing file is an empty
// history, not an error.
func (t *Transcript) Load() ([]Entry, error) {
	f, err := os.Open(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Wrapf(err, "store: opening transcript")
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 32<<20)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, oops.Wrapf(err, "store: decoding transcript entry")
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, oops.Wrapf(err, "store: scanning transcript")
	}
	return entries, nil
}
