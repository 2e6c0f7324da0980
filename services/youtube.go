package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeResolver tìm một video tutorial cho mỗi chương qua YouTube Data API
type YouTubeResolver struct {
	APIKey string
}

func NewYouTubeResolver() *YouTubeResolver {
	return &YouTubeResolver{APIKey: os.Getenv("YOUTUBE_API_KEY")}
}

var ErrMissingYouTubeKey = errors.New("chưa cấu hình YOUTUBE_API_KEY")

// VideoQuery ghép query tìm kiếm: topic + tên chương + "tutorial"
func VideoQuery(topic, chapterTitle string) string {
	return fmt.Sprintf("%s %s tutorial", topic, chapterTitle)
}

// Resolve lấy video đầu tiên khớp query, không lọc chất lượng.
// Thiếu key hoặc lỗi API trả error để caller rơi về bảng video mặc định.
func (r *YouTubeResolver) Resolve(ctx context.Context, topic, chapterTitle string) (string, error) {
	if r.APIKey == "" {
		return "", ErrMissingYouTubeKey
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(r.APIKey))
	if err != nil {
		return "", fmt.Errorf("không thể tạo YouTube client: %w", err)
	}

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(VideoQuery(topic, chapterTitle)).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("lỗi YouTube search: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.VideoId == "" {
		return "", errors.New("YouTube không trả kết quả nào")
	}

	return WatchURL(resp.Items[0].Id.VideoId), nil
}

// WatchURL dựng URL xem video từ video id
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// Bảng video giáo dục mặc định, khớp chuỗi con với topic.
// Dùng slice thay vì map để thứ tự khớp luôn ổn định.
var fallbackVideos = []struct {
	keyword string
	url     string
}{
	{"javascript", "https://www.youtube.com/watch?v=PkZNo7MFNFg"},
	{"react", "https://www.youtube.com/watch?v=DLX62G4lc44"},
	{"python", "https://www.youtube.com/watch?v=rfscVS0vtbw"},
	{"programming", "https://www.youtube.com/watch?v=zOjov-2OZ0E"},
	{"design", "https://www.youtube.com/watch?v=_Hp_kI6hluY"},
	{"business", "https://www.youtube.com/watch?v=YyQYj-FrFuk"},
	{"marketing", "https://www.youtube.com/watch?v=wRHgqGVYrpk"},
}

// DefaultVideoURL dùng khi topic không khớp keyword nào
const DefaultVideoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// FallbackVideoURL chọn video theo keyword chứa trong topic (không phân
// biệt hoa thường), không khớp thì trả video mặc định. Không bao giờ rỗng.
func FallbackVideoURL(topic string) string {
	lower := strings.ToLower(topic)
	for _, entry := range fallbackVideos {
		if strings.Contains(lower, entry.keyword) {
			return entry.url
		}
	}
	return DefaultVideoURL
}
