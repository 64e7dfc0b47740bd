package model

// Metric identifies one of the engagement counts carried by a snapshot.
type Metric string

const (
	MetricViews    Metric = "views"
	MetricLikes    Metric = "likes"
	MetricComments Metric = "comments"
)

// Metrics is the fixed order used for titles and thumbnail layout.
var Metrics = []Metric{MetricViews, MetricLikes, MetricComments}

// Credential is the opaque authorization value supplied by the poller.
// It is handed untouched to the client factory.
type Credential struct {
	Raw string `json:"-"`
}

// IsZero reports whether no credential was supplied
func (c Credential) IsZero() bool { return c.Raw == "" }

// String never exposes the raw value, so credentials are safe to log.
func (c Credential) String() string {
	if c.IsZero() {
		return "<none>"
	}
	return "<redacted>"
}

// StatSnapshot is the immutable set of engagement counts for one update cycle.
type StatSnapshot struct {
	VideoID    string     `json:"video_id"`
	Views      int64      `json:"views"`
	Likes      int64      `json:"likes"`
	Comments   int64      `json:"comments"`
	Credential Credential `json:"-"`
}

// Count returns the value of the given metric.
func (s StatSnapshot) Count(m Metric) int64 {
	switch m {
	case MetricViews:
		return s.Views
	case MetricLikes:
		return s.Likes
	case MetricComments:
		return s.Comments
	}
	return 0
}

// FormattedLabel is the display text derived from a single count.
type FormattedLabel struct {
	Text        string `json:"text"`
	SourceValue int64  `json:"source_value"`
}
