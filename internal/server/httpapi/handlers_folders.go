package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vaultbox/vaultbox/internal/common"
)

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

type moveFolderRequest struct {
	ParentID *string `json:"parent_id"`
}

func (s *Server) handleListChildren(c *gin.Context) {
	var folderID *string
	if id := c.Query("folder_id"); id != "" {
		folderID = &id
	}

	folders, files, err := s.directory.ListChildren(c.Request.Context(), accountID(c), folderID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	folderList := make([]folderResponse, 0, len(folders))
	for _, f := range folders {
		folderList = append(folderList, toFolderResponse(f))
	}
	fileList := make([]fileResponse, 0, len(files))
	for _, f := range files {
		fileList = append(fileList, toFileResponse(f))
	}
	c.JSON(http.StatusOK, gin.H{"folders": folderList, "files": fileList})
}

func (s *Server) handleCreateFolder(c *gin.Context) {
	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrorInvalidInput)
		return
	}

	folder, err := s.directory.CreateFolder(c.Request.Context(), accountID(c), req.Name, req.ParentID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFolderResponse(folder))
}

func (s *Server) handleMoveFolder(c *gin.Context) {
	var req moveFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrorInvalidInput)
		return
	}

	folder, err := s.directory.MoveFolder(c.Request.Context(), accountID(c), c.Param("id"), req.ParentID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFolderResponse(folder))
}

func (s *Server) handleDeleteFolder(c *gin.Context) {
	if err := s.directory.DeleteFolder(c.Request.Context(), accountID(c), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
