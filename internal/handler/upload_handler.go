package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	// Artist photos are commonly delivered as WebP.
	_ "golang.org/x/image/webp"
)

// UploadImage stores an uploaded image and returns its URL together
// with the intrinsic dimensions, which the studio keeps on the record
// for layout.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fant ingen opplastet bildefil", "success": 0})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bare bildefiler kan lastes opp", "success": 0})
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunne ikke opprette opplastingsmappen", "success": 0})
		return
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Kunne ikke lagre filen", "success": 0})
		return
	}

	width, height := probeImageDimensions(filePath)

	fileURL := strings.TrimRight(a.uploadURL, "/") + "/" + newFilename
	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"message": "Opplasting fullført",
		"data": gin.H{
			"filePath": fileURL,
			"url":      fileURL,
			"width":    width,
			"height":   height,
		},
	})
}

func probeImageDimensions(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
