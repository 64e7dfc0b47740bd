package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Count accepts either a JSON number or a numeric string. The statistics
// endpoint of the video platform reports counts as strings, so pollers that
// forward the raw values are accepted as-is.
type Count struct {
	Value int64
	Set   bool
}

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", string(data))
	}
	c.Value = v
	c.Set = true
	return nil
}

func (c Count) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(c.Value, 10)), nil
}

// StatsUpdateRequest is the ingress payload sent by the poller.
// Both snake_case and camelCase video id keys are accepted.
type StatsUpdateRequest struct {
	VideoID      string `json:"video_id"`
	VideoIDCamel string `json:"videoId"`
	Views        Count  `json:"views"`
	Likes        Count  `json:"likes"`
	Comments     Count  `json:"comments"`
}

// ID returns whichever video id key was supplied.
func (r StatsUpdateRequest) ID() string {
	if id := strings.TrimSpace(r.VideoID); id != "" {
		return id
	}
	return strings.TrimSpace(r.VideoIDCamel)
}

// Res is the envelope returned by the ingress endpoint.
type Res struct {
	Error   bool        `json:"error"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
