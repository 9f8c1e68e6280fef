package status

import (
	"context"
	"os"

	"ffmpeg-gui/internal/appconfig"
	"ffmpeg-gui/internal/configstore"
	"ffmpeg-gui/internal/journal"
	"ffmpeg-gui/internal/metrics"
)

// BootLister reads recent boots. *journal.Journal implements it.
type BootLister interface {
	Recent(ctx context.Context, limit int) ([]journal.Boot, error)
}

// Source is what a report is collected from.
type Source struct {
	Store        *configstore.Store
	TemplatePath string
	// Boots may be nil when the journal is disabled or unavailable.
	Boots        BootLister
	BootLimit    int
}

// Report describes the Config Store as guictl and the status API show it.
type Report struct {
	State        string            `json:"state" yaml:"state"`
	Config       configstore.Info  `json:"config" yaml:"config"`
	Template     configstore.Info  `json:"template" yaml:"template"`
	Customized   bool              `json:"customized" yaml:"customized"`
	Parsed       bool              `json:"parsed" yaml:"parsed"`
	ParseError   string            `json:"parseError,omitempty" yaml:"parseError,omitempty"`
	Issues       []appconfig.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
	Boots        []journal.Boot    `json:"boots,omitempty" yaml:"boots,omitempty"`
	JournalError string            `json:"journalError,omitempty" yaml:"journalError,omitempty"`
}

// Ready reports whether the Config Store exists and parses.
func (r *Report) Ready() bool {
	return r.Config.Exists && r.Parsed
}

// Collect inspects the Config Store and template, validates the document
// and reads recent boots. It also refreshes the config store gauges.
// Only a failure to inspect the Config Store itself is returned as an
// error; everything else is recorded in the report.
func Collect(ctx context.Context, src Source) (*Report, error) {
	info, err := src.Store.Inspect()
	if err != nil {
		return nil, err
	}

	r := &Report{State: "uninitialized", Config: info}

	// A missing template only matters for the pristine comparison.
	if tmpl, err := configstore.InspectTemplate(src.TemplatePath); err == nil {
		r.Template = tmpl
	}

	if info.Exists {
		r.State = "initialized"
		r.Customized = !info.Pristine(r.Template)

		data, err := os.ReadFile(info.Path)
		if err != nil {
			r.ParseError = err.Error()
		} else if doc, err := appconfig.ParseBytes(data); err != nil {
			r.ParseError = err.Error()
		} else {
			r.Parsed = true
			r.Issues = appconfig.Validate(doc)
		}
	}

	if src.Boots != nil {
		limit := src.BootLimit
		if limit <= 0 {
			limit = 10
		}
		boots, err := src.Boots.Recent(ctx, limit)
		if err != nil {
			r.JournalError = err.Error()
		} else {
			r.Boots = boots
		}
	}

	record(r)
	return r, nil
}

func record(r *Report) {
	metrics.ConfigStorePresent.Set(boolFloat(r.Config.Exists))
	metrics.ConfigStoreBytes.Set(float64(r.Config.Size))
	metrics.ConfigStoreCustomized.Set(boolFloat(r.Config.Exists && r.Customized))

	counts := appconfig.Count(r.Issues)
	if r.Config.Exists && !r.Parsed {
		// An unparsable document is one error as far as alerting goes.
		counts[appconfig.SeverityError]++
	}
	for severity, n := range counts {
		metrics.ConfigValidationIssues.WithLabelValues(string(severity)).Set(float64(n))
	}
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
