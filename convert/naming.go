package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"github.com/kleczekr/html-to-shopify-richtext/config"
)

// nameValues is a struct that holds variables we make available for output
// name template expansion
type nameValues struct {
	Context    string
	SourceFile string
	SourceExt  string
	Format     string
}

// expandOutputName expands the configured output name template for a source
// file name.
func expandOutputName(field, srcName string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(config.OutputNameTemplateFieldName)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", config.OutputNameTemplateFieldName, err)
	}

	srcExt := filepath.Ext(srcName)
	values := &nameValues{
		Context:    string(config.OutputNameTemplateFieldName),
		SourceFile: strings.TrimSuffix(filepath.Base(srcName), srcExt),
		SourceExt:  strings.TrimPrefix(srcExt, "."),
		Format:     "json",
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
