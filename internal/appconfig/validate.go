package appconfig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a document. Errors are things the GUI
// dereferences and would crash on; warnings are suspicious but usable.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Field    string   `json:"field" yaml:"field"`
	Message  string   `json:"message" yaml:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Field, i.Message)
}

// requiredParam is a control the GUI reads by name when building the
// ffmpeg command line for an encoder.
type requiredParam struct {
	name string
	kind string
}

var encoderParams = map[string][]requiredParam{
	"libaom-av1": {
		{"CRF", ParamSlider},
		{"CPU Used", ParamSlider},
		{"Tile Columns", ParamSlider},
		{"Tile Rows", ParamSlider},
		{"Threads", ParamSlider},
	},
	"libx265": {
		{"CRF", ParamSlider},
		{"Preset", ParamComboBox},
		{"Tune", ParamComboBox},
	},
	"libx264": {
		{"CRF", ParamSlider},
		{"Preset", ParamComboBox},
	},
}

var audioParams = []requiredParam{{"Bitrate", ParamComboBox}}

// Validate checks doc against the way the GUI consumes it. Issues are
// returned in a stable order.
func Validate(doc *Document) []Issue {
	var v validator

	if len(doc.VideoCodecs) == 0 {
		v.errorf("video_codecs", "at least one video codec is required")
	}
	for _, label := range sortedKeys(doc.VideoCodecs) {
		codec := doc.VideoCodecs[label]
		field := "video_codecs." + label
		if codec.Encoder == "" {
			v.errorf(field+".encoder", "encoder is required")
		}
		if codec.Extension == "" {
			v.errorf(field+".extension", "extension is required")
		} else if strings.HasPrefix(codec.Extension, ".") {
			v.warnf(field+".extension", "extension %q should not start with a dot", codec.Extension)
		}
		v.params(field, codec.Params)
		v.required(field, codec.Params, encoderParams[codec.Encoder])
	}

	if len(doc.AudioCodecs) == 0 {
		v.errorf("audio_codecs", "at least one audio codec is required")
	}
	for _, label := range sortedKeys(doc.AudioCodecs) {
		codec := doc.AudioCodecs[label]
		field := "audio_codecs." + label
		if codec.Encoder == "" {
			v.errorf(field+".encoder", "encoder is required")
		}
		for _, p := range codec.Params {
			if p.Type == ParamSlider {
				v.warnf(field+".params."+p.Name, "audio sliders are not rendered by the GUI")
			}
		}
		v.params(field, codec.Params)
		v.required(field, codec.Params, audioParams)
	}

	if len(doc.Resolutions) == 0 {
		v.errorf("resolutions", "at least one resolution is required")
	}
	seen := make(map[string]bool, len(doc.Resolutions))
	for i, res := range doc.Resolutions {
		field := fmt.Sprintf("resolutions[%d]", i)
		if err := checkResolution(res); err != nil {
			v.errorf(field, "%v", err)
		}
		if seen[res] {
			v.warnf(field, "duplicate resolution %q", res)
		}
		seen[res] = true
	}

	if strings.TrimSpace(doc.DefaultSettings.OutputDir) == "" {
		v.errorf("default_settings.output_dir", "output directory is required")
	}
	if doc.MaxConcurrentTasks < 1 {
		v.errorf("max_concurrent_tasks", "must be at least 1, got %d", doc.MaxConcurrentTasks)
	}

	return v.issues
}

// HasErrors reports whether any issue is error severity.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of issues per severity.
func Count(issues []Issue) map[Severity]int {
	counts := map[Severity]int{SeverityError: 0, SeverityWarning: 0}
	for _, i := range issues {
		counts[i.Severity]++
	}
	return counts
}

type validator struct {
	issues []Issue
}

func (v *validator) errorf(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Severity: SeverityError, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(field, format string, args ...any) {
	v.issues = append(v.issues, Issue{Severity: SeverityWarning, Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) params(field string, params []Param) {
	names := make(map[string]bool, len(params))
	for i, p := range params {
		pf := fmt.Sprintf("%s.params[%d]", field, i)
		if p.Name == "" {
			v.errorf(pf+".name", "name is required")
		} else {
			pf = field + ".params." + p.Name
			if names[p.Name] {
				v.errorf(pf, "duplicate parameter name")
			}
			names[p.Name] = true
		}

		switch p.Type {
		case ParamSlider:
			v.slider(pf, p)
		case ParamComboBox:
			v.comboBox(pf, p)
		default:
			v.warnf(pf+".type", "unknown type %q is ignored by the GUI", p.Type)
		}
	}
}

func (v *validator) slider(field string, p Param) {
	if p.Min == nil || p.Max == nil {
		v.errorf(field, "slider needs min and max")
		return
	}
	if *p.Min > *p.Max {
		v.errorf(field, "min %d is greater than max %d", *p.Min, *p.Max)
		return
	}
	def, ok := p.DefaultInt()
	if !ok {
		v.errorf(field+".default", "slider default must be an integer")
		return
	}
	if def < *p.Min || def > *p.Max {
		v.errorf(field+".default", "default %d outside [%d, %d]", def, *p.Min, *p.Max)
	}
}

func (v *validator) comboBox(field string, p Param) {
	if len(p.Options) == 0 {
		v.errorf(field+".options", "combobox needs at least one option")
		return
	}
	if len(p.Default) == 0 {
		v.errorf(field+".default", "default is required")
		return
	}
	def := p.DefaultString()
	for _, opt := range p.Options {
		if opt == def {
			return
		}
	}
	v.errorf(field+".default", "default %q is not one of the options", def)
}

func (v *validator) required(field string, params []Param, want []requiredParam) {
	byName := make(map[string]Param, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}
	for _, r := range want {
		p, ok := byName[r.name]
		if !ok {
			v.errorf(field+".params", "missing parameter %q", r.name)
			continue
		}
		if p.Type != r.kind {
			v.errorf(field+".params."+r.name, "must be a %s, got %q", r.kind, p.Type)
		}
	}
}

func checkResolution(res string) error {
	if res == ResolutionOriginal || res == ResolutionCustom {
		return nil
	}
	w, h, ok := strings.Cut(res, "x")
	if !ok {
		return fmt.Errorf("%q is neither a keyword nor WxH", res)
	}
	for _, part := range []string{w, h} {
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return fmt.Errorf("%q: dimensions must be positive integers", res)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
