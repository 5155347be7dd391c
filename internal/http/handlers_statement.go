package http

import (
	"errors"
	"fmt"
	"net/http"

	"budgetplanner/internal/core"
	"budgetplanner/internal/ingest"
	"budgetplanner/internal/services"
	"budgetplanner/internal/session"
)

type previewRow struct {
	Category    string
	Amount      string
	Description string
	Invalid     bool
}

type previewData struct {
	Filename string
	Rows     []previewRow
	Invalid  int
}

// handleUploadStatement parses the multipart "file" field into a preview
// that waits on the session for confirmation.
func (s *Server) handleUploadStatement(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, "The statement file is too large.").Write(w)
			return
		}
		BadRequestError("Please select a file to upload.").Write(w)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Please select a file to upload.").Write(w)
		return
	}
	defer file.Close()

	st, err := s.expenses.PrepareImport(r.Context(), sess, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		UnprocessableEntityError(statementErrorMessage(err)).Write(w)
		return
	}

	data := previewData{Filename: st.Filename, Invalid: st.Invalid}
	for _, e := range st.Expenses {
		data.Rows = append(data.Rows, previewRow{
			Category:    e.Category,
			Amount:      core.FormatAmount(e.Amount),
			Description: e.Description,
			Invalid:     !e.HasValidAmount(),
		})
	}
	s.render(w, r, "statement_preview.html", data)
}

func statementErrorMessage(err error) string {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		return "Only CSV and XLSX statements are supported."
	case errors.Is(err, ingest.ErrMissingAmountColumn):
		return "The statement has no amount column."
	case errors.Is(err, ingest.ErrEmptyStatement):
		return "The statement is empty."
	default:
		return "Error parsing statement: " + err.Error()
	}
}

// handleConfirmStatement appends the pending preview to the ledger.
func (s *Server) handleConfirmStatement(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	n, err := s.expenses.ConfirmImport(r.Context(), sess)
	if errors.Is(err, services.ErrNoPendingImport) {
		BadRequestError("There is no uploaded statement to confirm.").Write(w)
		return
	}
	if err != nil {
		InternalServerError("Could not import the statement.").Write(w)
		return
	}
	msg := fmt.Sprintf("Added %d expenses from the statement.", n)
	SuccessResponse(msg).
		TriggerExpensesChanged(sess.Ledger.Len()).
		TriggerSuccessNotification(msg).
		Write(w)
}
