package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vaultbox/vaultbox/internal/common"
)

type createShareRequest struct {
	FileID     string `json:"file_id"`
	Password   string `json:"password"`
	TTLMinutes int    `json:"ttl_minutes"`
}

type shareDownloadRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleCreateShare(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrorInvalidInput)
		return
	}

	ttl := time.Duration(req.TTLMinutes) * time.Minute
	link, err := s.share.CreateLink(c.Request.Context(), accountID(c), req.FileID, req.Password, ttl)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":      link.Token,
		"expires_at": link.ExpiresAt,
	})
}

func (s *Server) handleShareInfo(c *gin.Context) {
	info, err := s.share.GetPublicInfo(c.Request.Context(), c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleShareDownload(c *gin.Context) {
	// the password body is optional; open links are redeemed with none
	var req shareDownloadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			s.writeError(c, common.ErrorInvalidInput)
			return
		}
	}

	file, data, err := s.gateway.Redeem(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
