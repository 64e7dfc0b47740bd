package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"video-stats-updater/domain/model"
)

// MaxTitleLength is the platform limit on title length in characters.
const MaxTitleLength = 100

// BuildTitle renders "<prefix> <views> VIEWS, <likes> LIKES AT <comments> COMMENTS".
// labels and captions are in model.Metrics order.
func BuildTitle(prefix string, labels []model.FormattedLabel, captions []string) string {
	word := func(i int) (string, string) {
		var text, caption string
		if i < len(labels) {
			text = labels[i].Text
		}
		if i < len(captions) {
			caption = captions[i]
		}
		return text, caption
	}
	views, viewsCaption := word(0)
	likes, likesCaption := word(1)
	comments, commentsCaption := word(2)

	body := fmt.Sprintf("%s %s, %s %s AT %s %s", views, viewsCaption, likes, likesCaption, comments, commentsCaption)
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		return body
	}
	return prefix + " " + body
}

// ValidateTitle rejects titles the platform would refuse.
func ValidateTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: title is empty", model.ErrValidation)
	case utf8.RuneCountInString(title) > MaxTitleLength:
		return fmt.Errorf("%w: title exceeds %d characters", model.ErrValidation, MaxTitleLength)
	case strings.ContainsAny(title, "<>"):
		return fmt.Errorf("%w: title contains angle brackets", model.ErrValidation)
	}
	return nil
}
