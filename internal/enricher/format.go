package enricher

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Decentr-net/timeline/internal/entities"
)

const day = 24 * time.Hour

// nolint: gochecknoglobals
var printer = message.NewPrinter(language.English)

// Style is a visual classification of event.
type Style struct {
	Icon  string
	Color string
}

// DefaultStyle is used for event types absent in styles table.
// nolint: gochecknoglobals
var DefaultStyle = Style{Icon: "activity", Color: "gray"}

// nolint: gochecknoglobals
var styles = map[entities.EventType]Style{
	entities.PostCreatedEvent:        {Icon: "message-square", Color: "blue"},
	entities.PostSharedEvent:         {Icon: "repeat", Color: "green"},
	entities.PostReplyEvent:          {Icon: "corner-down-right", Color: "blue"},
	entities.PostQuoteEvent:          {Icon: "quote", Color: "indigo"},
	entities.ReactionAddedEvent:      {Icon: "heart", Color: "red"},
	entities.DonationSentEvent:       {Icon: "send", Color: "orange"},
	entities.DonationReceivedEvent:   {Icon: "bitcoin", Color: "orange"},
	entities.ProjectCreatedEvent:     {Icon: "rocket", Color: "purple"},
	entities.ProjectUpdatedEvent:     {Icon: "edit", Color: "purple"},
	entities.ProjectMilestoneEvent:   {Icon: "flag", Color: "yellow"},
	entities.ProjectFundedEvent:      {Icon: "target", Color: "green"},
	entities.ProfileUpdatedEvent:     {Icon: "user", Color: "teal"},
	entities.UserFollowedEvent:       {Icon: "user-plus", Color: "cyan"},
	entities.OrganizationJoinedEvent: {Icon: "users", Color: "indigo"},
	entities.SystemAnnouncementEvent: {Icon: "megaphone", Color: "slate"},
}

// StyleOf returns icon and color of event type.
func StyleOf(t entities.EventType) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return DefaultStyle
}

// FormatAmount renders btc amount if it's set, otherwise sats amount, otherwise nil.
func FormatAmount(btc *float64, sats *int64) *string {
	var s string

	switch {
	case btc != nil:
		s = fmt.Sprintf("₿%.6f", *btc)
	case sats != nil:
		s = printer.Sprintf("%d sats", *sats)
	default:
		return nil
	}

	return &s
}

// TimeAgo renders human relative time of t.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)

	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < day:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*day:
		return fmt.Sprintf("%dd ago", int(d/day))
	default:
		return t.Format("1/2/2006")
	}
}

// IsRecent returns true if t is within last 24 hours.
func IsRecent(t, now time.Time) bool {
	return now.Sub(t) < day
}
