package services

import (
	"bytes"
	"testing"
)

func TestInferMimeType(t *testing.T) {
	cases := []struct {
		declared string
		filename string
		want     string
	}{
		{"application/pdf", "resume.pdf", MimeTypePDF},
		{"text/plain; charset=utf-8", "notes.txt", MimeTypeText},
		{"", "resume.pdf", MimeTypePDF},
		{"", "resume.PDF", MimeTypePDF},
		{"", "resume.docx", MimeTypeDocx},
		{"", "resume.doc", MimeTypeDoc},
		{"", "resume.txt", MimeTypeText},
		{"application/octet-stream", "resume.docx", MimeTypeDocx},
		{"", "mystery.bin", "application/octet-stream"},
		{"APPLICATION/PDF", "x", MimeTypePDF},
	}

	for _, tc := range cases {
		if got := InferMimeType(tc.declared, tc.filename); got != tc.want {
			t.Errorf("InferMimeType(%q, %q) = %q, want %q", tc.declared, tc.filename, got, tc.want)
		}
	}
}

func TestPrepareUploadForwardsSupportedFormats(t *testing.T) {
	parser := NewDocumentParserService()
	data := []byte("plain resume text")

	out, mimeType, err := PrepareUpload(parser, data, "text/plain", "resume.txt")
	if err != nil {
		t.Fatalf("PrepareUpload failed: %v", err)
	}
	if mimeType != MimeTypeText {
		t.Errorf("mimeType = %q, want text/plain", mimeType)
	}
	if !bytes.Equal(out, data) {
		t.Error("supported formats must be forwarded unchanged")
	}

	pdfBytes := []byte("%PDF-1.4 fake")
	out, mimeType, err = PrepareUpload(parser, pdfBytes, "", "resume.pdf")
	if err != nil {
		t.Fatalf("PrepareUpload failed: %v", err)
	}
	if mimeType != MimeTypePDF || !bytes.Equal(out, pdfBytes) {
		t.Error("PDF must be forwarded as-is")
	}
}

func TestPrepareUploadRejectsBrokenDocx(t *testing.T) {
	parser := NewDocumentParserService()

	_, _, err := PrepareUpload(parser, []byte("not a zip archive"), "", "resume.docx")
	if err == nil {
		t.Fatal("expected conversion failure for corrupt docx")
	}
}
