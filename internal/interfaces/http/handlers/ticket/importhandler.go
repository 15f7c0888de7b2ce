package ticket

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"pinkslip/internal/application/ticket/usecases"
	"pinkslip/internal/infrastructure/spreadsheet"
	"pinkslip/internal/interfaces/dto"
	"pinkslip/internal/shared/constants"
	"pinkslip/internal/shared/errors"
	"pinkslip/internal/shared/logger"
	"pinkslip/internal/shared/utils"
)

// RowReader parses an uploaded spreadsheet into rows keyed by column name.
type RowReader interface {
	Read(r io.Reader, filename string) ([]spreadsheet.Row, error)
}

type ImportHandler struct {
	importUC       usecases.ImportBatchExecutor
	reader         RowReader
	maxUploadBytes int64
	logger         logger.Interface
}

func NewImportHandler(
	importUC usecases.ImportBatchExecutor,
	reader RowReader,
	maxUploadBytes int64,
	logger logger.Interface,
) *ImportHandler {
	return &ImportHandler{
		importUC:       importUC,
		reader:         reader,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ImportTickets handles POST /api/imports. The upload is the multipart
// field "file"; ?format=csv answers with the rejection report as CSV.
func (h *ImportHandler) ImportTickets(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile(constants.FormFieldImportFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			utils.ErrorResponseWithError(c, &errors.AppError{
				Type:    errors.ErrorTypeBadRequest,
				Message: "upload too large",
				Code:    http.StatusRequestEntityTooLarge,
				Details: fmt.Sprintf("limit is %d bytes", tooLarge.Limit),
			})
			return
		}
		h.logger.Warnw("import request without file", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError(
			"missing upload", fmt.Sprintf("multipart field %q is required", constants.FormFieldImportFile)))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	records, err := h.reader.Read(file, filename)
	if err != nil {
		h.logger.Warnw("failed to read import file", "filename", filename, "error", err)
		if errors.IsAppError(err) {
			utils.ErrorResponseWithError(c, err)
		} else {
			utils.ErrorResponseWithError(c, errors.NewValidationError("unreadable import file", err.Error()))
		}
		return
	}

	rows := make([]usecases.RawRow, len(records))
	lines := make([]int, len(records))
	for i, rec := range records {
		rows[i] = usecases.RawRow(rec.Values)
		lines[i] = rec.Line
	}

	result, err := h.importUC.Execute(c.Request.Context(), usecases.ImportBatchCommand{
		Rows:   rows,
		Lines:  lines,
		Source: filename,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		var buf bytes.Buffer
		if err := spreadsheet.WriteCSV(&buf, dto.RejectionReportHeader, dto.RejectionReportRows(result.Rejections)); err != nil {
			h.logger.Errorw("failed to render rejection report", "batch_id", result.BatchID, "error", err)
			utils.ErrorResponseWithError(c, errors.NewInternalError("failed to render rejection report"))
			return
		}
		c.Header("X-Batch-ID", result.BatchID)
		utils.AttachmentResponse(c, "rejections-"+result.BatchID+".csv", constants.ContentTypeCSV, buf.Bytes())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Import committed", dto.ToImportSummaryResponse(result))
}
