package handlers

import (
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"jobhunt-insights/internal/analysis"
	"jobhunt-insights/internal/config"
	"jobhunt-insights/internal/logging"
	"jobhunt-insights/pkg/models"
	"jobhunt-insights/pkg/utils"
)

// UploadResumeHandler handles POST /api/resume/upload. The file is read
// from the multipart field configured in upload.form_field.
func UploadResumeHandler(cfg *config.Config, svc *analysis.Service, logger logging.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := logging.FromContext(ctx, logger)

		fileHeader, err := c.FormFile(cfg.Upload.FormField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return tooLargeResponse(c)
			}
			log.Info("upload without file", map[string]interface{}{"error": err.Error()})
			return respondError(c, log, utils.NewInputError("No file uploaded"))
		}

		if fileHeader.Size > cfg.Upload.MaxBytes {
			return tooLargeResponse(c)
		}

		file, err := fileHeader.Open()
		if err != nil {
			return respondError(c, log, utils.NewInternalError("Failed to read uploaded file", err))
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, cfg.Upload.MaxBytes+1))
		if err != nil {
			return respondError(c, log, utils.NewInternalError("Failed to read uploaded file", err))
		}
		if int64(len(data)) > cfg.Upload.MaxBytes {
			return tooLargeResponse(c)
		}

		record, err := svc.Upload(ctx, fileHeader.Filename, data)
		if err != nil {
			return respondError(c, log, err)
		}

		message := "Resume uploaded successfully"
		if record.Degraded {
			message = "Resume uploaded, but its text could not be fully extracted"
		}

		return c.JSON(http.StatusOK, models.UploadResponse{
			ResumeID:   record.ID,
			Message:    message,
			Filename:   record.OriginalFilename,
			TextLength: utf8.RuneCountInString(record.ExtractedText),
			Degraded:   record.Degraded,
		})
	}
}

func tooLargeResponse(c echo.Context) error {
	return respondError(c, logging.NewDiscardLogger(), &utils.CustomError{
		Code:    http.StatusRequestEntityTooLarge,
		Message: "Uploaded file is too large",
	})
}
