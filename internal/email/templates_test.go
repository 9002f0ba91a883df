package email

import (
	"strings"
	"testing"
)

func TestRenderEmailTemplates(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     emailData
		want     []string
	}{
		{
			name:     "professional selected",
			template: "professional_selected",
			data:     emailData{Heading: "New request", ClientName: "Anna", Category: "Plumbing"},
			want:     []string{"New request", "Anna", "Plumbing"},
		},
		{
			name:     "appointment accepted",
			template: "appointment_accepted",
			data:     emailData{Heading: "Accepted", ProfessionalName: "Bob"},
			want:     []string{"Accepted", "Bob accepted"},
		},
		{
			name:     "appointment declined",
			template: "appointment_declined",
			data:     emailData{Heading: "Declined", ProfessionalName: "Bob"},
			want:     []string{"Declined", "Bob declined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderEmailTemplate(tt.template, tt.data)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, fragment := range tt.want {
				if !strings.Contains(html, fragment) {
					t.Errorf("rendered email missing %q", fragment)
				}
			}
		})
	}
}

func TestRenderEmailTemplateEscapesHTML(t *testing.T) {
	html, err := renderEmailTemplate("professional_selected", emailData{
		Heading:    "New request",
		ClientName: "<script>alert(1)</script>",
		Category:   "Plumbing",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("client name was not escaped")
	}
}
