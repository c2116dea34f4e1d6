package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

// TemplateLoader renders string values of the wrapped loader as text/template
// with the environment as data, so {{ env "DB_HOST" }} and {{ .HOME }} work.
// Values that fail to render are left unchanged.
type TemplateLoader struct {
	loader Loader
	funcs  template.FuncMap
}

func NewTemplateLoader(loader Loader) *TemplateLoader {
	return &TemplateLoader{
		loader: loader,
		funcs: template.FuncMap{
			"default": func(def, val any) string {
				if s, ok := val.(string); ok && s != "" {
					return s
				}
				if s, ok := def.(string); ok {
					return s
				}
				return ""
			},
			"env":   os.Getenv,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
		},
	}
}

func (t *TemplateLoader) Load() (map[string]any, error) {
	raw, err := t.loader.Load()
	if err != nil {
		return nil, err
	}

	data := environ()
	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		processed[k] = t.process(v, data)
	}
	return processed, nil
}

func (t *TemplateLoader) process(v any, data map[string]string) any {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "{{") || !strings.Contains(val, "}}") {
			return val
		}
		rendered, err := t.render(val, data)
		if err != nil {
			return val
		}
		return rendered
	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			mapped[k] = t.process(item, data)
		}
		return mapped
	case []any:
		result := make([]any, len(val))
		for i, item := range val {
			result[i] = t.process(item, data)
		}
		return result
	default:
		return val
	}
}

func (t *TemplateLoader) render(input string, data map[string]string) (string, error) {
	tmpl, err := template.New("config").Funcs(t.funcs).Parse(input)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func environ() map[string]string {
	data := make(map[string]string)
	for _, env := range os.Environ() {
		if k, v, ok := strings.Cut(env, "="); ok {
			data[k] = v
		}
	}
	return data
}
