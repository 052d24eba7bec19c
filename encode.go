package tradelab

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeJournal decodes events from a stream of JSONL data from an io.Reader,
// decodes each line into the appropriate event struct, and returns a validated
// Journal. Lines are re-ordered chronologically before replay, so a hand-edited
// file does not need to be kept sorted.
func DecodeJournal(r io.Reader) (*Journal, error) {
	scanner := bufio.NewScanner(r)

	var events []Event
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command EventType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decoded Event
		var err error

		switch identifier.Command {
		case EventInit:
			var e Init
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case EventOpen:
			var e OpenLot
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		case EventClose:
			var e CloseLot
			err = json.Unmarshal(lineBytes, &e)
			decoded = e
		default:
			err = fmt.Errorf("unknown event command: %q", identifier.Command)
		}

		if err != nil {
			return nil, err
		}
		events = append(events, decoded)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Sort before replaying so a close always finds its open, even when the
	// file lists them out of order.
	stableSortEvents(events)

	j := NewJournal()
	if err := j.Append(events...); err != nil {
		return nil, err
	}
	return j, nil
}

// EncodeEvent marshals a single event to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeEvent(w io.Writer, e Event) error {
	jsonData, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

// EncodeJournal persists the journal to an io.Writer in JSONL format: one
// event per line, chronological order, stable field order within a line.
func EncodeJournal(w io.Writer, j *Journal) error {
	for e := range j.Events() {
		if err := EncodeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}
