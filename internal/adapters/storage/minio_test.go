package storage

import (
	"testing"

	"fitconnect-backend/platform/apperr"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		ok          bool
	}{
		{"application/pdf", true},
		{"APPLICATION/PDF", true},
		{"text/plain; charset=utf-8", true},
		{"image/png", true},
		{"application/x-msdownload", false},
		{"video/mp4", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			err := validateContentType(tt.contentType)
			if tt.ok && err != nil {
				t.Fatalf("expected %q to be allowed, got %v", tt.contentType, err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatalf("expected %q to be rejected", tt.contentType)
				}
				if !apperr.Is(err, apperr.KindValidation) {
					t.Errorf("expected validation error, got %v", err)
				}
			}
		})
	}
}

func TestValidateFileSize(t *testing.T) {
	s := &MinIOStorage{maxFileSize: 1024}

	if err := s.validateFileSize(512); err != nil {
		t.Fatalf("expected 512 bytes to pass, got %v", err)
	}
	if err := s.validateFileSize(0); err == nil {
		t.Fatal("expected zero size to be rejected")
	}
	if err := s.validateFileSize(2048); err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
}
