package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaultbox/vaultbox/internal/common"
)

func (s *Server) handleUpload(c *gin.Context) {
	// ContentLength catches oversized uploads before any body is read;
	// MaxBytesReader backstops chunked requests that do not declare one.
	if c.Request.ContentLength > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		s.writeError(c, common.ErrorInvalidInput)
		return
	}

	var folderID *string
	if id := c.PostForm("folder_id"); id != "" {
		folderID = &id
	}

	src, err := header.Open()
	if err != nil {
		s.writeError(c, common.ErrorInternal)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		s.writeError(c, common.ErrorInternal)
		return
	}

	file, err := s.directory.PlaceFile(c.Request.Context(), accountID(c), folderID, header.Filename, data)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFileResponse(file))
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := s.directory.ListAllFiles(c.Request.Context(), accountID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	list := make([]fileResponse, 0, len(files))
	for _, f := range files {
		list = append(list, toFileResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"files": list})
}

func (s *Server) handleDownload(c *gin.Context) {
	file, data, err := s.directory.Download(c.Request.Context(), accountID(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	if err := s.directory.DeleteFile(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleStats(c *gin.Context) {
	usage, err := s.stats.Usage(c.Request.Context(), accountID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}
