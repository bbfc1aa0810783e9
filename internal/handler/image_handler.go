package handler

import (
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// folderElement is the allowlist for each element of the caller-supplied
// upload folder; anything else (".." included) is rejected.
var folderElement = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type ImageHandler struct {
	uploadsDir string
}

func NewImageHandler(uploadsDir string) *ImageHandler {
	return &ImageHandler{uploadsDir: uploadsDir}
}

// Upload stores the multipart file under uploads/<folder>/ keeping the
// original filename, so re-uploading the same name overwrites the earlier
// file.
func (h *ImageHandler) Upload(c *gin.Context) {
	folder, ok := sanitizeFolder(c.Param("folder"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder path"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters missing: image not present"})
		return
	}

	name := filepath.Base(file.Filename)
	if name == "." || name == string(filepath.Separator) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	dir := filepath.Join(h.uploadsDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"url":     "/uploads/" + folder + "/" + name,
	})
}

type RandomFilepathReq struct {
	Type string `json:"type"`
}

// RandomFilepath returns a uniformly random entry of uploads/default/<type>.
func (h *ImageHandler) RandomFilepath(c *gin.Context) {
	var req RandomFilepathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !folderElement.MatchString(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder path"})
		return
	}

	dir := filepath.Join(h.uploadsDir, "default", req.Type)
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	pick := entries[rand.Intn(len(entries))]
	c.JSON(http.StatusOK, gin.H{
		"url": "/uploads/default/" + req.Type + "/" + pick.Name(),
	})
}

// sanitizeFolder validates every path element of the caller-supplied folder
// against the allowlist and returns the cleaned slash-joined form.
func sanitizeFolder(folder string) (string, bool) {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "", false
	}
	parts := strings.Split(folder, "/")
	for _, p := range parts {
		if !folderElement.MatchString(p) {
			return "", false
		}
	}
	return strings.Join(parts, "/"), true
}
