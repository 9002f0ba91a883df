package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	subjectProfessionalSelected = "You have been selected for a new service request"
	subjectAppointmentAccepted  = "Your appointment request was accepted"
	subjectAppointmentDeclined  = "Your appointment request was declined"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_top"}}<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#1a1a1a;">
<h2>{{.Heading}}</h2>{{end}}
{{define "layout_bottom"}}<p style="color:#777;font-size:12px;">This is an automated message, please do not reply.</p>
</body></html>{{end}}

{{define "professional_selected"}}{{template "layout_top" .}}
<p>{{.ClientName}} selected you for a {{.Category}} request.</p>
<p>Log in to review the request and accept or decline the appointment.</p>
{{template "layout_bottom" .}}{{end}}

{{define "appointment_accepted"}}{{template "layout_top" .}}
<p>{{.ProfessionalName}} accepted your appointment request.</p>
<p>Log in to confirm the appointment and view the contact details.</p>
{{template "layout_bottom" .}}{{end}}

{{define "appointment_declined"}}{{template "layout_top" .}}
<p>{{.ProfessionalName}} declined your appointment request.</p>
<p>You can open a new service request to find another professional.</p>
{{template "layout_bottom" .}}{{end}}
`))

type emailData struct {
	Heading          string
	ClientName       string
	Category         string
	ProfessionalName string
}

func renderEmailTemplate(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render email %s: %w", name, err)
	}
	return buf.String(), nil
}
