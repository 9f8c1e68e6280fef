package appconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Resolution keywords understood by the GUI.
const (
	ResolutionOriginal = "原始"
	ResolutionCustom   = "自定义"
)

// Param kinds.
const (
	ParamSlider   = "slider"
	ParamComboBox = "combobox"
)

// Document is the configuration read by the GUI.
type Document struct {
	VideoCodecs        map[string]VideoCodec `json:"video_codecs"`
	AudioCodecs        map[string]AudioCodec `json:"audio_codecs"`
	Resolutions        []string              `json:"resolutions"`
	DefaultSettings    DefaultSettings       `json:"default_settings"`
	MaxConcurrentTasks int                   `json:"max_concurrent_tasks"`
}

type VideoCodec struct {
	Encoder   string  `json:"encoder"`
	Extension string  `json:"extension"`
	Params    []Param `json:"params"`
}

type AudioCodec struct {
	Encoder string  `json:"encoder"`
	Params  []Param `json:"params"`
}

// DefaultSettings keeps unknown keys so a round trip does not drop them.
type DefaultSettings struct {
	OutputDir string                     `json:"output_dir"`
	Extra     map[string]json.RawMessage `json:"-"`
}

func (d *DefaultSettings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["output_dir"]; ok {
		if err := json.Unmarshal(v, &d.OutputDir); err != nil {
			return fmt.Errorf("output_dir: %w", err)
		}
		delete(raw, "output_dir")
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

func (d DefaultSettings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	out["output_dir"] = d.OutputDir
	return json.Marshal(out)
}

// Param is one encoder control. Default is a number for sliders and a
// string for combo boxes, so it is kept raw.
type Param struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Min     *int            `json:"min,omitempty"`
	Max     *int            `json:"max,omitempty"`
	Default json.RawMessage `json:"default,omitempty"`
	Options []string        `json:"options,omitempty"`
}

// DefaultInt returns Default as an integer.
func (p Param) DefaultInt() (int, bool) {
	var n int
	if err := json.Unmarshal(p.Default, &n); err != nil {
		return 0, false
	}
	return n, true
}

// DefaultString returns Default as the GUI displays it: strings as-is,
// anything else in its JSON form.
func (p Param) DefaultString() string {
	var s string
	if err := json.Unmarshal(p.Default, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(p.Default))
}

// Parse decodes a configuration document. Trailing data after the document
// is an error.
func Parse(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("failed to parse configuration: unexpected data after document")
	}
	return &doc, nil
}

// ParseBytes is Parse over a byte slice.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
