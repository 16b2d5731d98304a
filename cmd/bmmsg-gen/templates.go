package main

import (
	"fmt"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	"comment": func(s string) string {
		lines := strings.Split(strings.TrimSpace(s), "\n")
		for i, l := range lines {
			lines[i] = strings.TrimRight("// "+strings.TrimSpace(l), " ")
		}
		return strings.Join(lines, "\n")
	},
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(fileTmpl + messageTmpl))

func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

const fileTmpl = `{{define "file" -}}
// Code generated by bmmsg-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

var (
{{- range .Messages}}
	_ messages.Message = (*{{.Type}})(nil)
{{- end}}
)
{{range .Messages}}{{template "message" .}}{{end -}}
{{end}}`

const messageTmpl = `{{define "message"}}
// {{.Type}} is the {{.Name}} message.
{{- if .Description}}
//
{{comment .Description}}
{{- end}}
type {{.Type}} struct {
{{- if .Header}}
	Header messages.SensorHeader
{{- end}}
{{- range .Fields}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

// {{.Type}}Fingerprint is the fingerprint of the {{.Name}} definition.
const {{.Type}}Fingerprint = {{quote .Fingerprint}}
{{if .Header}}
// New{{.Type}} returns a {{.Type}} with its header version set.
func New{{.Type}}() *{{.Type}} {
	return &{{.Type}}{Header: messages.SensorHeader{Version: {{.Version}}}}
}
{{end}}
func (*{{.Type}}) Name() string { return {{quote .Name}} }

func (m *{{.Type}}) Table() wire.Table {
	fields := []wire.Field{
{{- range .Fields}}
		{{.Ctor}}({{quote .Key}}, &m.{{.GoName}}){{if .Checked}}.Checked(){{end}},
{{- end}}
	}
{{- if .Header}}
	return wire.Table{StrictOrder: {{.Strict}}, Fields: append(m.Header.Fields(), fields...)}
{{- else}}
	return wire.Table{StrictOrder: {{.Strict}}, Fields: fields}
{{- end}}
}
{{end}}`
