// Package tmpl renders user-supplied Go templates against catalog records.
package tmpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// shellQuote returns a shell-safe quoted string. It wraps the string in single
// quotes and escapes any existing single quotes using the '\'' technique.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// csvQuote quotes s the way a delimited catalog line would.
func csvQuote(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") && strings.TrimSpace(s) == s {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"csv":   csvQuote,
	"json":  toJSON,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Template is a parsed template that can be executed repeatedly.
type Template struct {
	t *template.Template
}

// Parse compiles a template. References to undefined keys fail at execution.
//
// Available template functions:
//   - shq:   shell-quote a string
//   - csv:   quote a string as a delimited-file field
//   - json:  encode any value as JSON
//   - upper, lower: change case
func Parse(text string) (*Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return &Template{t: t}, nil
}

// Execute renders the template with data.
func (t *Template) Execute(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Render parses and executes a template in one step.
func Render(text string, data any) (string, error) {
	t, err := Parse(text)
	if err != nil {
		return "", err
	}
	return t.Execute(data)
}
