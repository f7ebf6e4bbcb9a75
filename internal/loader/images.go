package loader

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// ImagesFromDir turns a directory of <rank>.<ext> files into a rank->data
// URI map.
func ImagesFromDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	images := make(map[string]string)
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !imageExtensions[ext] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		rank := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		images[rank] = DataURI(data, ext)
	}
	return images, nil
}

// DataURI encodes an image as a data: URI.
func DataURI(data []byte, ext string) string {
	mime := http.DetectContentType(data)
	if ext == ".svg" {
		mime = "image/svg+xml"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// LoadImages reads the rank->image map at ref, which is either a JSON object
// or a local directory of images. An empty ref yields no images.
func (s *Source) LoadImages(ctx context.Context, ref string) (map[string]string, error) {
	if ref == "" {
		return nil, nil
	}
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		images, err := ImagesFromDir(ref)
		if err != nil {
			return nil, fmt.Errorf("read image directory: %w", err)
		}
		zap.S().Infof("loaded %d images from directory %s", len(images), ref)
		return images, nil
	}

	rc, err := s.Open(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("open image map: %w", err)
	}
	defer rc.Close()

	var images map[string]string
	if err := json.NewDecoder(rc).Decode(&images); err != nil {
		return nil, fmt.Errorf("decode image map %s: %w", ref, err)
	}
	zap.S().Infof("loaded %d images from %s", len(images), ref)
	return images, nil
}
