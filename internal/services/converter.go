package services

import (
	"path/filepath"
	"strings"

	"bbditm/resume-assistant/internal/apperrors"
)

const (
	MimeTypePDF  = "application/pdf"
	MimeTypeDoc  = "application/msword"
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeText = "text/plain"

	mimeTypeOctetStream = "application/octet-stream"
)

var extensionMimeTypes = map[string]string{
	".pdf":  MimeTypePDF,
	".doc":  MimeTypeDoc,
	".docx": MimeTypeDocx,
	".txt":  MimeTypeText,
}

// InferMimeType resolves the MIME type to upload a file under: the declared
// type when it names something concrete, otherwise a best-effort guess from
// the file name's extension.
func InferMimeType(declared, filename string) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if declared != "" && declared != mimeTypeOctetStream {
		// Strip parameters like "; charset=utf-8".
		if idx := strings.IndexByte(declared, ';'); idx != -1 {
			declared = strings.TrimSpace(declared[:idx])
		}
		return declared
	}

	if mimeType, ok := extensionMimeTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mimeType
	}
	return mimeTypeOctetStream
}

// PrepareUpload readies file bytes for the provider. DOCX is the one accepted
// format the provider will not ingest, so it is converted to plain text
// locally; everything else is forwarded as-is under the inferred MIME type.
func PrepareUpload(parser DocumentParserService, data []byte, declaredMime, filename string) ([]byte, string, error) {
	mimeType := InferMimeType(declaredMime, filename)

	if mimeType != MimeTypeDocx {
		return data, mimeType, nil
	}

	text, err := parser.ExtractText(MimeTypeDocx, data)
	if err != nil {
		return nil, "", apperrors.NewConversionFailed(err.Error())
	}
	return []byte(text), MimeTypeText, nil
}
