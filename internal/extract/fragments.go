package extract

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/docstruct/internal/fragment"
)

// FragmentsExtractor handles pre-extracted fragment dumps. The file is
// either a bare JSON array of fragments or an envelope with a
// "fragments" field, matching the API request body.
type FragmentsExtractor struct{}

func (e *FragmentsExtractor) Extract(r io.Reader, filename string) ([]fragment.Fragment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fragments: %w", err)
	}

	var frags []fragment.Fragment
	if err := json.Unmarshal(data, &frags); err != nil {
		var envelope struct {
			Fragments []fragment.Fragment `json:"fragments"`
		}
		if err2 := json.Unmarshal(data, &envelope); err2 != nil || envelope.Fragments == nil {
			return nil, fmt.Errorf("decode fragments: %w", err)
		}
		frags = envelope.Fragments
	}

	out := make([]fragment.Fragment, 0, len(frags))
	for _, f := range frags {
		out = append(out, fragment.Normalize(f))
	}
	return out, nil
}
