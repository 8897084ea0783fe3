package render

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/valyala/fasttemplate"
	"gopkg.in/yaml.v3"

	"github.com/slipstream/tautulli-notify/internal/notification/types"
)

//go:embed templates.yaml
var defaultTemplates []byte

// FlavorSet holds the templates and labels of one markup flavor.
type FlavorSet struct {
	AudioLabel    string                     `yaml:"audio_label"`
	SynopsisLabel string                     `yaml:"synopsis_label"`
	Templates     map[types.MediaType]string `yaml:"templates"`

	compiled map[types.MediaType]*fasttemplate.Template
}

// TemplateSet holds the templates of every flavor.
type TemplateSet struct {
	Markdown FlavorSet `yaml:"markdown"`
	HTML     FlavorSet `yaml:"html"`
}

// Flavor returns the set for f.
func (s *TemplateSet) Flavor(f Flavor) (*FlavorSet, bool) {
	switch f {
	case FlavorMarkdown:
		return &s.Markdown, true
	case FlavorHTML:
		return &s.HTML, true
	}
	return nil, false
}

// overrideSet mirrors TemplateSet with optional labels so an override file
// can blank a label out.
type overrideSet struct {
	Markdown overrideFlavor `yaml:"markdown"`
	HTML     overrideFlavor `yaml:"html"`
}

type overrideFlavor struct {
	AudioLabel    *string                    `yaml:"audio_label"`
	SynopsisLabel *string                    `yaml:"synopsis_label"`
	Templates     map[types.MediaType]string `yaml:"templates"`
}

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() (*TemplateSet, error) {
	set, err := decodeDefaults()
	if err != nil {
		return nil, err
	}
	if err := set.validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func decodeDefaults() (*TemplateSet, error) {
	var set TemplateSet
	if err := yaml.Unmarshal(defaultTemplates, &set); err != nil {
		return nil, fmt.Errorf("failed to decode default templates: %w", err)
	}
	return &set, nil
}

// LoadTemplates returns the default templates with the entries of the
// override file at path applied on top. An empty path yields the defaults.
func LoadTemplates(path string) (*TemplateSet, error) {
	set, err := decodeDefaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read templates file: %w", err)
		}
		var override overrideSet
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to decode templates file: %w", err)
		}
		if err := set.Markdown.apply(override.Markdown); err != nil {
			return nil, fmt.Errorf("markdown: %w", err)
		}
		if err := set.HTML.apply(override.HTML); err != nil {
			return nil, fmt.Errorf("html: %w", err)
		}
	}

	if err := set.validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func (f *FlavorSet) apply(o overrideFlavor) error {
	if o.AudioLabel != nil {
		f.AudioLabel = *o.AudioLabel
	}
	if o.SynopsisLabel != nil {
		f.SynopsisLabel = *o.SynopsisLabel
	}
	for mt, tmpl := range o.Templates {
		if !mt.Valid() {
			return fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
		}
		if f.Templates == nil {
			f.Templates = make(map[types.MediaType]string)
		}
		f.Templates[mt] = tmpl
	}
	return nil
}

// validate checks that every media type has a template in every flavor and
// compiles them. Compilation fails on a placeholder without a closing brace.
func (s *TemplateSet) validate() error {
	var errs []error
	for _, flavor := range []Flavor{FlavorMarkdown, FlavorHTML} {
		set, _ := s.Flavor(flavor)
		set.compiled = make(map[types.MediaType]*fasttemplate.Template, len(types.MediaTypes))
		for _, mt := range types.MediaTypes {
			tmpl, ok := set.Templates[mt]
			if !ok || tmpl == "" {
				errs = append(errs, fmt.Errorf("%w: %s/%s", ErrTemplateMissing, flavor, mt))
				continue
			}
			t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s/%s: %w", ErrInvalidTemplate, flavor, mt, err))
				continue
			}
			set.compiled[mt] = t
		}
	}
	return errors.Join(errs...)
}
