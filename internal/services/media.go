package services

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aboard/internal/models"

	"github.com/google/uuid"

	// 注册解码器，校验已落盘的图片时用
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// 校验类错误，对用户可见，走 400；其余错误一律按服务端错误处理
var (
	ErrUnsupportedType        = errors.New("unsupported media type")
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrUnsupportedVideoFormat = errors.New("unsupported video format")
	ErrInvalidImage           = errors.New("invalid image file")
	ErrFileTooLarge           = errors.New("file too large")
)

// IsValidationErr 判断是否为用户侧校验错误
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrUnsupportedImageFormat) ||
		errors.Is(err, ErrUnsupportedVideoFormat) ||
		errors.Is(err, ErrInvalidImage) ||
		errors.Is(err, ErrFileTooLarge)
}

// MediaKind 附件的顶层类型
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// ModelType 转换为持久化用的 MediaType 字面量
func (k MediaKind) ModelType() models.MediaType {
	if k == KindVideo {
		return models.MediaVideo
	}
	return models.MediaImage
}

// 扩展名到顶层类型的映射。分类只看扩展名、不嗅探内容，这是有意保留的既定行为：
// 允许的格式表是对外承诺，不能偷偷收紧。
var extKinds = map[string]MediaKind{
	"jpeg": KindImage,
	"jpg":  KindImage,
	"png":  KindImage,
	"gif":  KindImage,
	"webp": KindImage,
	"bmp":  KindImage,
	"svg":  KindImage,
	"tiff": KindImage,
	"avif": KindImage,
	"ico":  KindImage,

	"mp4":  KindVideo,
	"webm": KindVideo,
	"mov":  KindVideo,
	"avi":  KindVideo,
	"mkv":  KindVideo,
}

// 白名单子类型
var allowedImages = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// ClassifyMedia 根据声明的文件名判定附件类型和子类型。
// jpg 归一化为 jpeg；白名单之外的格式在写任何字节之前就被拒绝。
func ClassifyMedia(filename string) (MediaKind, string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	kind, ok := extKinds[ext]
	if !ok {
		return "", "", ErrUnsupportedType
	}

	switch kind {
	case KindImage:
		if !allowedImages[ext] {
			return "", "", ErrUnsupportedImageFormat
		}
		if ext == "jpg" {
			ext = "jpeg"
		}
	case KindVideo:
		if ext != "mp4" {
			return "", "", ErrUnsupportedVideoFormat
		}
	}
	return kind, ext, nil
}

// MediaStore 附件落盘服务。文件名永远是服务端生成的 UUID 加校验过的扩展名，
// 客户端提交的文件名只参与分类，不参与落盘路径。
type MediaStore struct {
	imageDir string
	videoDir string
	maxBytes int64
}

func NewMediaStore(imageDir, videoDir string, maxBytes int64) *MediaStore {
	return &MediaStore{
		imageDir: imageDir,
		videoDir: videoDir,
		maxBytes: maxBytes,
	}
}

// Store 把附件流式写入对应目录，成功时返回服务端相对 URL。
// 整个过程不会把上传内容完整缓冲到内存里；写入中断（包括客户端断开）
// 或超出大小上限时，删掉写了一半的文件再返回错误。
// 图片在写完后重新打开解码一次，防止靠改扩展名伪装的文件；
// 视频只认扩展名，不校验容器内容（既定缺口）。
func (m *MediaStore) Store(kind MediaKind, subtype string, r io.Reader) (string, error) {
	dir := m.imageDir
	urlPrefix := "/uploads/images/"
	if kind == KindVideo {
		dir = m.videoDir
		urlPrefix = "/uploads/videos/"
	}

	filename := uuid.New().String() + "." + subtype
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(r, m.maxBytes+1))
	if err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > m.maxBytes {
		f.Close()
		os.Remove(path)
		return "", ErrFileTooLarge
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	if kind == KindImage {
		if err := verifyImage(path); err != nil {
			os.Remove(path)
			return "", err
		}
	}

	return urlPrefix + filename, nil
}

// verifyImage 重新打开落盘文件并完整解码，解码失败说明扩展名在撒谎
func verifyImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopen image: %w", err)
	}
	defer f.Close()

	if _, _, err := image.Decode(f); err != nil {
		return ErrInvalidImage
	}
	return nil
}
