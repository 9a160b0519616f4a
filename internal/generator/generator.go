// Package generator renders the synthesized union and dispatch declarations
// into a formatted Go source file.
package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"

	"github.com/seitarof/defunc/internal/synth"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Generator writes the replacement declarations for one group.
type Generator interface {
	Generate(cfg Config, res *synth.Result) error
}

// Config is the minimum config contract required by the generator.
type Config interface {
	OutputFilename() string
	OutputPackage() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to its destination.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type stdoutWriter struct{}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"variantDecl":  variantDecl,
		"dispatchCase": dispatchCase,
	}).ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

// NewStdoutWriter creates a writer that prints instead of writing, for dry
// runs.
func NewStdoutWriter() FileWriter {
	return &stdoutWriter{}
}

func (g *generatorImpl) Generate(cfg Config, res *synth.Result) error {
	data := buildTemplateData(cfg, res)

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "defunc.go.tmpl", data); err != nil {
		return errors.Wrap(err, "template")
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "format")
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func (w *stdoutWriter) Write(filename string, data []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "// %s\n%s", filename, data)
	return err
}

type templateData struct {
	Package        string
	GroupImport    string
	GroupPkg       string
	GroupRef       string
	GroupAliased   bool
	Annotations    []string
	UnionName      string
	TypeParamsDecl string
	TypeParamsUse  string
	Marker         string
	Subject        string
	Variants       []variantTemplateData
	DispatchName   string
	DispatchDoc    []string
	ParamList      string
	ResultClause   string
	HasResult      bool
}

type variantTemplateData struct {
	Name     string
	FuncName string
	Fields   []fieldTemplateData
	CallArgs string
}

type fieldTemplateData struct {
	GoName string
	Type   string
}

func buildTemplateData(cfg Config, res *synth.Result) templateData {
	u := res.Union
	d := res.Dispatch

	data := templateData{
		Package:      cfg.OutputPackage(),
		GroupImport:  res.GroupPath,
		GroupPkg:     res.GroupName,
		Annotations:  u.Annotations,
		UnionName:    u.Name,
		Marker:       "is" + u.Name,
		DispatchName: d.Name,
		HasResult:    d.Result != "",
	}
	data.TypeParamsDecl, data.TypeParamsUse = renderTypeParams(u)

	// The union-value parameter and the group qualifier are the generator's
	// own identifiers; the shared parameters keep their declared names, so
	// it is these two that must step aside on a collision.
	taken := map[string]bool{}
	for _, p := range d.Params {
		taken[p.Name] = true
	}
	data.Subject = freeIdent("v", taken)
	ref := res.GroupName
	if taken[ref] || ref == data.Subject {
		ref = freeIdent(ref+"pkg", taken)
	}
	data.GroupRef = ref
	data.GroupAliased = ref != res.GroupName

	for _, w := range d.Where {
		data.DispatchDoc = append(data.DispatchDoc, "where "+w)
	}

	var params strings.Builder
	for _, p := range d.Params {
		params.WriteString(", ")
		params.WriteString(p.Name)
		params.WriteString(" ")
		params.WriteString(p.Type)
	}
	data.ParamList = params.String()
	if d.Result != "" {
		data.ResultClause = " " + d.Result
	}

	for _, v := range u.Variants {
		vt := variantTemplateData{Name: v.Name, FuncName: v.FuncName}
		args := make([]string, 0, len(v.Fields)+len(d.Params))
		for _, f := range v.Fields {
			vt.Fields = append(vt.Fields, fieldTemplateData{GoName: f.GoName, Type: f.Type})
			args = append(args, data.Subject+"."+f.GoName)
		}
		for _, p := range d.Params {
			args = append(args, p.Name)
		}
		vt.CallArgs = strings.Join(args, ", ")
		data.Variants = append(data.Variants, vt)
	}
	return data
}

// variantDecl renders one variant struct and its marker method. A variant
// without extra fields is an empty struct, the unit payload.
func variantDecl(v variantTemplateData, data templateData) string {
	var b strings.Builder
	b.WriteString("type ")
	b.WriteString(v.Name)
	b.WriteString(data.TypeParamsDecl)
	b.WriteString(" struct")
	if len(v.Fields) == 0 {
		b.WriteString("{}")
	} else {
		b.WriteString(" {\n")
		for _, f := range v.Fields {
			b.WriteString("\t")
			b.WriteString(f.GoName)
			b.WriteString(" ")
			b.WriteString(f.Type)
			b.WriteString("\n")
		}
		b.WriteString("}")
	}
	b.WriteString("\n\nfunc (")
	b.WriteString(v.Name)
	b.WriteString(data.TypeParamsUse)
	b.WriteString(") ")
	b.WriteString(data.Marker)
	b.WriteString("() {}")
	return b.String()
}

// dispatchCase renders one branch body: the delegating call to the original
// candidate, extras first, shared arguments last.
func dispatchCase(v variantTemplateData, data templateData) string {
	call := data.GroupRef + "." + v.FuncName + "(" + v.CallArgs + ")"
	if data.HasResult {
		return "return " + call
	}
	return call + "\n\t\treturn"
}

// freeIdent suffixes base with underscores until it collides with none of the
// taken identifiers.
func freeIdent(base string, taken map[string]bool) string {
	name := base
	for taken[name] {
		name += "_"
	}
	return name
}

// renderTypeParams renders the union's type parameters as a declaration list
// ("[T any, U comparable]") and a use list ("[T, U]"). Empty bounds default
// to any, the broadest Go constraint.
func renderTypeParams(u *synth.UnionType) (decl string, use string) {
	if len(u.Generics) == 0 {
		return "", ""
	}

	decls := make([]string, 0, len(u.Generics))
	names := make([]string, 0, len(u.Generics))
	for _, g := range u.Generics {
		bounds := g.Bounds
		if bounds == "" {
			bounds = "any"
		}
		decls = append(decls, g.Name+" "+bounds)
		names = append(names, g.Name)
	}
	return "[" + strings.Join(decls, ", ") + "]", "[" + strings.Join(names, ", ") + "]"
}
