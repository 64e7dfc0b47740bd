package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"video-stats-updater/domain/model"
	"video-stats-updater/domain/repository"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Config represents YouTube API configuration
type Config struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	// Endpoint overrides the API base URL, e.g. a local fake.
	Endpoint string `json:"endpoint"`
}

// Factory builds a Client per request credential.
type Factory struct {
	oauthConfig *oauth2.Config
	endpoint    string
}

// NewFactory creates a client factory. The OAuth client id and secret are only
// needed to refresh tokens that carry a refresh token.
func NewFactory(config Config) *Factory {
	return &Factory{
		oauthConfig: &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Scopes: []string{
				youtube.YoutubeScope,
				youtube.YoutubeUploadScope,
				youtube.YoutubeForceSslScope,
			},
			Endpoint: google.Endpoint,
		},
		endpoint: config.Endpoint,
	}
}

// ForCredential parses the credential and returns a client authorized with it.
func (f *Factory) ForCredential(ctx context.Context, cred model.Credential) (repository.IYouTube, error) {
	token, err := ParseCredential(cred)
	if err != nil {
		return nil, err
	}

	var ts oauth2.TokenSource
	if token.RefreshToken != "" && f.oauthConfig.ClientID != "" {
		// refreshes transparently once the access token expires
		ts = f.oauthConfig.TokenSource(context.WithoutCancel(ctx), token)
	} else {
		ts = oauth2.StaticTokenSource(token)
	}

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(context.WithoutCancel(ctx), ts))}
	if f.endpoint != "" {
		opts = append(opts, option.WithEndpoint(f.endpoint))
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create YouTube service: %v", model.ErrRemote, err)
	}
	return &Client{service: service}, nil
}

type credentialJSON struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	Expiry       string  `json:"expiry"`
	ExpiryDate   float64 `json:"expiry_date"` // unix millis
}

// ParseCredential accepts either a JSON token object or a bare access token.
func ParseCredential(cred model.Credential) (*oauth2.Token, error) {
	raw := strings.TrimSpace(cred.Raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: credential is empty", model.ErrAuth)
	}

	if !strings.HasPrefix(raw, "{") {
		if strings.ContainsAny(raw, " \t\r\n") {
			return nil, fmt.Errorf("%w: credential is neither a token object nor an access token", model.ErrAuth)
		}
		return &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}, nil
	}

	var cj credentialJSON
	if err := json.Unmarshal([]byte(raw), &cj); err != nil {
		return nil, fmt.Errorf("%w: malformed credential: %v", model.ErrAuth, err)
	}
	if cj.AccessToken == "" && cj.RefreshToken == "" {
		return nil, fmt.Errorf("%w: credential has no access or refresh token", model.ErrAuth)
	}

	token := &oauth2.Token{
		AccessToken:  cj.AccessToken,
		RefreshToken: cj.RefreshToken,
		TokenType:    cj.TokenType,
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	switch {
	case cj.ExpiryDate > 0:
		token.Expiry = time.UnixMilli(int64(cj.ExpiryDate))
	case cj.Expiry != "":
		if t, err := time.Parse(time.RFC3339, cj.Expiry); err == nil {
			token.Expiry = t
		}
	}
	return token, nil
}

// Client represents YouTube API client bound to one credential
type Client struct {
	service *youtube.Service
}

// GetVideoSnippet retrieves the snippet of a specific video
func (c *Client) GetVideoSnippet(ctx context.Context, videoID string) (*model.VideoSnippet, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video ID is required", model.ErrValidation)
	}

	response, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, classify("list video", err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, videoID)
	}

	snippet := toSnippet(response.Items[0])
	return &snippet, nil
}

// UpdateVideoSnippet writes the whole snippet back. Fields the platform
// requires on update (category) travel with it, so nothing is reset.
func (c *Client) UpdateVideoSnippet(ctx context.Context, snippet model.VideoSnippet) (*model.VideoSnippet, error) {
	if snippet.VideoID == "" {
		return nil, fmt.Errorf("%w: video ID is required", model.ErrValidation)
	}

	video := &youtube.Video{
		Id: snippet.VideoID,
		Snippet: &youtube.VideoSnippet{
			Title:                snippet.Title,
			Description:          snippet.Description,
			Tags:                 snippet.Tags,
			CategoryId:           snippet.CategoryID,
			DefaultLanguage:      snippet.DefaultLanguage,
			DefaultAudioLanguage: snippet.DefaultAudioLanguage,
		},
	}

	updated, err := c.service.Videos.Update([]string{"snippet"}, video).Context(ctx).Do()
	if err != nil {
		return nil, classify("update video", err)
	}
	result := toSnippet(updated)
	return &result, nil
}

// SetThumbnail uploads the encoded thumbnail as the video's custom thumbnail.
func (c *Client) SetThumbnail(ctx context.Context, videoID string, thumb *model.RenderedThumbnail) error {
	if videoID == "" {
		return fmt.Errorf("%w: video ID is required", model.ErrValidation)
	}
	if thumb == nil || len(thumb.Data) == 0 {
		return fmt.Errorf("%w: empty thumbnail", model.ErrValidation)
	}

	_, err := c.service.Thumbnails.Set(videoID).
		Media(bytes.NewReader(thumb.Data), googleapi.ContentType(thumb.ContentType)).
		Context(ctx).
		Do()
	if err != nil {
		return classify("set thumbnail", err)
	}
	return nil
}

func toSnippet(video *youtube.Video) model.VideoSnippet {
	s := model.VideoSnippet{VideoID: video.Id}
	if video.Snippet == nil {
		return s
	}
	s.Title = video.Snippet.Title
	s.Description = video.Snippet.Description
	s.Tags = video.Snippet.Tags
	s.CategoryID = video.Snippet.CategoryId
	s.DefaultLanguage = video.Snippet.DefaultLanguage
	s.DefaultAudioLanguage = video.Snippet.DefaultAudioLanguage
	s.ChannelID = video.Snippet.ChannelId
	s.ChannelTitle = video.Snippet.ChannelTitle
	s.PublishedAt = video.Snippet.PublishedAt
	s.LiveBroadcastContent = video.Snippet.LiveBroadcastContent
	return s
}
