package invoice

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/apdesk/invoice-vision/internal/extraction"
)

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func writeJSONError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleExtract accepts an uploaded document, runs the extraction pipeline,
// and returns the typed result. A failed document is fully failed; there is
// no partial result to return.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	// 50MB cap to handle high-resolution phone photos and scanned PDFs
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "File is too large. Maximum size is 50MB."
		}
		writeJSONError(w, errorMsg, http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if err.Error() == "http: no such file" {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		writeJSONError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	if header.Size > maxFormSize {
		writeJSONError(w, "File is too large. Maximum size is 50MB.", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSONError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := sniffContentType(header.Header.Get("Content-Type"), header.Filename)

	result, err := s.service.ProcessDocument(r.Context(), header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error processing document", "filename", header.Filename, "error", err)
		writeJSONError(w, "Processing failed for this document", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// sniffContentType trusts the declared MIME type and falls back to the file
// extension when it is missing. application/octet-stream is what multipart
// writers and curl declare when they don't know the real type, so it counts
// as missing too.
func sniffContentType(declared, filename string) string {
	contentType := strings.ToLower(strings.TrimSpace(declared))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// decodeResult reads an ExtractionResult from an export request body
func decodeResult(r *http.Request) (*extraction.ExtractionResult, error) {
	var result extraction.ExtractionResult
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// handleExportCSV renders a previously extracted result as CSV. The result
// travels in the request body since nothing is persisted server-side.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := decodeResult(r)
	if err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	data, err := WriteCSV(result)
	if err != nil {
		slog.Error("Error writing CSV export", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(result, "csv")))
	w.Write(data)
}

// handleExportXLSX renders a previously extracted result as an XLSX workbook
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	result, err := decodeResult(r)
	if err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	data, err := WriteXLSX(result)
	if err != nil {
		slog.Error("Error writing XLSX export", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(result, "xlsx")))
	w.Write(data)
}

// exportFilename names the export after the first invoice number, falling
// back to "unknown" when no invoice was found
func exportFilename(result *extraction.ExtractionResult, ext string) string {
	number := "unknown"
	if len(result.Invoices) > 0 && result.Invoices[0].Number != "" {
		number = result.Invoices[0].Number
	}
	return fmt.Sprintf("invoice_%s.%s", number, ext)
}
