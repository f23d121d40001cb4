package handler

import (
	"context"
	stdErrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/dto"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// archiveURLExpiry bounds presigned download links
const archiveURLExpiry = time.Hour

// ArchiveBrowser lists and links archived pipeline artifacts
type ArchiveBrowser interface {
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	GetFileURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ArchiveHandler exposes the raw-output archive to operators
type ArchiveHandler struct {
	archive ArchiveBrowser
	logger  *zap.Logger
}

// NewArchiveHandler creates a new archive handler
func NewArchiveHandler(archive ArchiveBrowser, logger *zap.Logger) *ArchiveHandler {
	return &ArchiveHandler{archive: archive, logger: logger}
}

// ListFiles lists archived transcripts and model outputs
// @Summary      List archived artifacts
// @Description  Lists transcripts and raw model outputs kept for review, filtered by key prefix (e.g. meetings/2025-03-14/)
// @Tags         Archive
// @Produce      json
// @Param        prefix  query     string  false  "Key prefix filter"
// @Success      200     {object}  dto.ArchiveListResponse
// @Failure      500     {object}  common.ErrorResponse
// @Router       /api/archive [get]
func (h *ArchiveHandler) ListFiles(c echo.Context) error {
	prefix := c.QueryParam("prefix")

	files, err := h.archive.ListFiles(c.Request().Context(), prefix)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list archive", err))
	}
	if files == nil {
		files = []string{}
	}

	if h.logger != nil {
		h.logger.Info("archive listed",
			zap.String("prefix", prefix),
			zap.Int("count", len(files)))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.ArchiveListResponse{
		Files:  files,
		Count:  len(files),
		Prefix: prefix,
	})
}

// DownloadURL generates a presigned URL for one artifact
// @Summary      Archived artifact download URL
// @Tags         Archive
// @Produce      json
// @Param        key  query     string  true  "Object key"
// @Success      200  {object}  dto.ArchiveURLResponse
// @Failure      400  {object}  common.ErrorResponse
// @Failure      404  {object}  common.ErrorResponse
// @Failure      500  {object}  common.ErrorResponse
// @Router       /api/archive/url [get]
func (h *ArchiveHandler) DownloadURL(c echo.Context) error {
	key := strings.TrimSpace(c.QueryParam("key"))
	if key == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing key parameter"))
	}

	url, err := h.archive.GetFileURL(c.Request().Context(), key, archiveURLExpiry)
	if stdErrors.Is(err, entities.ErrArchiveObjectNotFound) {
		return HandleError(h.logger, c, errors.ErrNotFound("Archived object not found").WithDetail("key", key))
	}
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("presign archive object", err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, dto.ArchiveURLResponse{
		Key:       key,
		URL:       url,
		ExpiresIn: archiveURLExpiry.String(),
	})
}
