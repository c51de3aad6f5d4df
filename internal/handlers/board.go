package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"aboard/internal/middleware"
	"aboard/internal/models"
	"aboard/internal/services"
	"aboard/internal/store"
	"aboard/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const indexCacheKey = "board:index"

type BoardHandler struct {
	store *store.PostStore
	media *services.MediaStore
}

func NewBoardHandler(postStore *store.PostStore, mediaStore *services.MediaStore) *BoardHandler {
	return &BoardHandler{
		store: postStore,
		media: mediaStore,
	}
}

// copyH 浅拷贝渲染数据。缓存里的 map 被所有请求共享，而 Render 会往里写
// 每个请求自己的字段，直接用会互相踩
func copyH(src gin.H) gin.H {
	dst := make(gin.H, len(src)+2)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Index 信息流首页 (GET /)
func (h *BoardHandler) Index(c *gin.Context) {
	if cached := utils.GetCache().Get(indexCacheKey); cached != nil {
		if hData, ok := cached.(gin.H); ok {
			Render(c, http.StatusOK, "board/index.html", copyH(hData))
			return
		}
	}

	posts, err := h.store.ListAll()
	if err != nil {
		log.Printf("Failed to load posts: %v", err)
		RenderError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to load posts")
		return
	}

	renderData := gin.H{
		"Posts": posts,
		"Title": "/a/ - Random",
	}

	// 写入缓存，有效期 1 分钟；发帖成功时主动失效
	utils.GetCache().Set(indexCacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "board/index.html", copyH(renderData))
}

// CreatePost 处理发帖 (POST /post)。
// 按到达顺序顺次消费 multipart 字段：文本字段累积，file 字段交给附件服务落盘；
// 附件校验一旦失败立即终止整个提交，已收集的文本直接丢弃，不产生半个帖子。
func (h *BoardHandler) CreatePost(c *gin.Context) {
	mr, err := c.Request.MultipartReader()
	if err != nil {
		RenderError(c, http.StatusBadRequest, "Bad Request", "Expected a multipart form submission")
		return
	}

	var name, subject, body strings.Builder
	mediaURL := ""
	var mediaType models.MediaType

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			RenderError(c, http.StatusBadRequest, "Bad Request", "Malformed multipart payload")
			return
		}

		switch part.FormName() {
		case "name":
			err = readTextPart(part, &name)
		case "subject":
			err = readTextPart(part, &subject)
		case "body":
			err = readTextPart(part, &body)
		case "file":
			// 附件可选：没有文件名就当没传
			if strings.TrimSpace(part.FileName()) == "" {
				continue
			}

			kind, subtype, cerr := services.ClassifyMedia(part.FileName())
			if cerr != nil {
				RenderError(c, http.StatusBadRequest, "Bad Request", mediaErrMessage(cerr))
				return
			}

			url, serr := h.media.Store(kind, subtype, part)
			if serr != nil {
				if services.IsValidationErr(serr) {
					RenderError(c, http.StatusBadRequest, "Bad Request", mediaErrMessage(serr))
					return
				}
				log.Printf("Failed to store upload: %v", serr)
				RenderError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to store uploaded file")
				return
			}
			mediaURL = url
			mediaType = kind.ModelType()
		}

		if err != nil {
			RenderError(c, http.StatusBadRequest, "Bad Request", "Malformed multipart payload")
			return
		}
	}

	n := strings.TrimSpace(name.String())
	s := strings.TrimSpace(subject.String())
	b := strings.TrimSpace(body.String())
	if n == "" || s == "" || b == "" {
		// 注意：此时已落盘的附件不回删，文件没有任何引用，留着无害
		RenderError(c, http.StatusBadRequest, "Bad Request", "Name, Subject, and Comment cannot be empty")
		return
	}

	post := models.Post{
		Name:      n,
		Subject:   s,
		Body:      b,
		Timestamp: time.Now().Unix(),
		MediaURL:  mediaURL,
		MediaType: mediaType,
	}

	if err := h.store.Insert(&post); err != nil {
		log.Printf("Failed to save post: %v", err)
		RenderError(c, http.StatusInternalServerError, "Internal Server Error", "Failed to save post")
		return
	}

	// 记住昵称，下次发帖预填表单
	session := sessions.Default(c)
	session.Set(middleware.PosterNameKey, n)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
	}

	// 主动失效首页缓存，让新帖立即可见
	utils.GetCache().Delete(indexCacheKey)

	// 重定向回信息流，刷新不会重复提交
	c.Redirect(http.StatusSeeOther, "/")
}

// readTextPart 读完一个文本字段。按 UTF-8 宽松解码，非法字节序列替换为
// U+FFFD，绝不因此报错
func readTextPart(r io.Reader, b *strings.Builder) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.WriteString(strings.ToValidUTF8(string(data), "�"))
	return nil
}

func mediaErrMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrUnsupportedImageFormat):
		return "Unsupported image format"
	case errors.Is(err, services.ErrUnsupportedVideoFormat):
		return "Unsupported video format"
	case errors.Is(err, services.ErrInvalidImage):
		return "Invalid image file"
	case errors.Is(err, services.ErrFileTooLarge):
		return "File too large"
	default:
		return "Unsupported media type"
	}
}
