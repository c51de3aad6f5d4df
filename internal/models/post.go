package models

// MediaType 附件类型，数据库中存储字面量 "Image" / "Video"，空串表示无附件
type MediaType string

const (
	MediaImage MediaType = "Image"
	MediaVideo MediaType = "Video"
)

// ParseMediaType 从存储的字面量还原 MediaType，未知值返回 false
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(s) {
	case MediaImage:
		return MediaImage, true
	case MediaVideo:
		return MediaVideo, true
	}
	return "", false
}

func (m MediaType) String() string {
	return string(m)
}

// Post 帖子，唯一的持久化实体。入库后不可变，没有更新和删除操作。
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Subject   string    `gorm:"not null" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Timestamp int64     `gorm:"not null;index" json:"timestamp"` // 入库时间，秒级时间戳，信息流按其倒序展示
	MediaURL  string    `json:"media_url,omitempty"`             // Optional, /uploads/ 下的相对路径
	MediaType MediaType `gorm:"size:8" json:"media_type,omitempty"`
}

// HasMedia 是否带附件。MediaURL 和 MediaType 要么同时存在要么同时为空。
// 值接收者，模板里对非指针的 Post 也能调用。
func (p Post) HasMedia() bool {
	return p.MediaURL != "" && p.MediaType != ""
}
