package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// OrderLineData is one receipt row.
type OrderLineData struct {
	Name               string
	Length             int
	Density            string
	Quantity           int
	UnitPriceFormatted string
	LineTotalFormatted string
}

// OrderConfirmationData fills the order confirmation template.
type OrderConfirmationData struct {
	Reference      string
	Lines          []OrderLineData
	TotalFormatted string
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
