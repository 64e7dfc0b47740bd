package model

// VideoSnippet mirrors the remote snippet resource of a video.
// Only Title is ever changed by this service; every other field is read
// and written back as fetched.
type VideoSnippet struct {
	VideoID              string   `json:"video_id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Tags                 []string `json:"tags,omitempty"`
	CategoryID           string   `json:"category_id"`
	DefaultLanguage      string   `json:"default_language,omitempty"`
	DefaultAudioLanguage string   `json:"default_audio_language,omitempty"`
	ChannelID            string   `json:"channel_id,omitempty"`
	ChannelTitle         string   `json:"channel_title,omitempty"`
	PublishedAt          string   `json:"published_at,omitempty"`
	LiveBroadcastContent string   `json:"live_broadcast_content,omitempty"`
}

// WithTitle returns a copy of the snippet with only the title replaced.
func (s VideoSnippet) WithTitle(title string) VideoSnippet {
	out := s
	if s.Tags != nil {
		out.Tags = append([]string(nil), s.Tags...)
	}
	out.Title = title
	return out
}
