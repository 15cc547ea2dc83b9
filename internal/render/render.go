package render

import (
	"fmt"
	"strings"

	"github.com/BearBump/TrackChat/internal/models"
)

// ShipmentText renders a shipment as HTML-markup reply text: an optional
// header block (TD / From / To lines), a blank line, then one block per
// container. Lines whose fields are missing are omitted without leaving gaps.
func ShipmentText(s *models.Shipment) string {
	var b strings.Builder
	if s.TD != "" {
		fmt.Fprintf(&b, "<b>TD:</b> %s\n", s.TD)
	}
	if s.OriginCity != "" && s.OriginCountry != "" {
		fmt.Fprintf(&b, "<b>From:</b> %s, %s\n", s.OriginCity, s.OriginCountry)
	}
	if s.DestCity != "" && s.DestCountry != "" {
		fmt.Fprintf(&b, "<b>To:</b> %s, %s", s.DestCity, s.DestCountry)
	}
	general := strings.TrimRight(b.String(), " \t\n")

	blocks := make([]string, 0, len(s.Containers))
	for _, c := range s.Containers {
		blocks = append(blocks, containerText(c))
	}
	return general + "\n\n" + strings.Join(blocks, "\n\n")
}

func containerText(c models.Container) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> - %s %s\n", c.Number, c.Size, c.Type)
	if c.ETA != "" {
		fmt.Fprintf(&b, "<b>ETA:</b> %s\n", c.ETA)
	}
	if c.LatestActivity != "" && c.LatestCity != "" && c.LatestCountry != "" && c.LatestTime != "" {
		fmt.Fprintf(&b, "<b>Last Event:</b> %s - %s, %s - %s",
			c.LatestActivity, c.LatestCity, c.LatestCountry, c.LatestTime)
	}
	return strings.TrimRight(b.String(), " \t\n")
}

// ReportText formats the admin mirror report for one request/response pair.
func ReportText(request, response, username string) string {
	return fmt.Sprintf("[REPORT]\nUsername: %s\n\nRequest:\n%s\n\nResponse:\n%s",
		username, request, response)
}

// StartText is the /start greeting.
func StartText() string {
	return "Hi! This is Maersk tracking bot.\n" +
		"Please send a container or transport document number to " +
		"track your shipment. You can send up to 10 shipments at " +
		"a time."
}
