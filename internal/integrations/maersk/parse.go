package maersk

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/BearBump/TrackChat/internal/models"
)

// User-facing classifications keyed by API status.
const (
	MsgNotFound  = "No container shipment found"
	MsgBadID     = "Incorrect search ID"
	MsgWentWrong = "Something went wrong"
)

// Outcome is the parse result for one response: either a structured shipment
// or a classification message, never both.
type Outcome struct {
	Shipment *models.Shipment
	Message  string
}

type shipmentPayload struct {
	TpdocNum    string             `json:"tpdoc_num"`
	Origin      *placePayload      `json:"origin"`
	Destination *placePayload      `json:"destination"`
	Containers  []containerPayload `json:"containers"`
}

type placePayload struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type containerPayload struct {
	ContainerNum     string         `json:"container_num"`
	ContainerSize    string         `json:"container_size"`
	ContainerType    string         `json:"container_type"`
	ETAFinalDelivery string         `json:"eta_final_delivery"`
	Latest           *latestPayload `json:"latest"`
}

type latestPayload struct {
	Activity   string `json:"activity"`
	City       string `json:"city"`
	Country    string `json:"country"`
	ActualTime string `json:"actual_time"`
}

// Parse classifies a raw response: a shipment on HTTP 200, a message for
// everything else. Missing payload objects and fields degrade to empty
// values, not errors.
func Parse(resp Response) Outcome {
	if resp.Err != nil {
		return Outcome{Message: MsgWentWrong}
	}
	switch resp.StatusCode {
	case http.StatusOK:
		var p shipmentPayload
		if err := json.Unmarshal(resp.Body, &p); err != nil {
			// Undecodable 200 body reads as an unknown server condition.
			return Outcome{Message: MsgWentWrong}
		}
		return Outcome{Shipment: shipmentFromPayload(p)}
	case http.StatusNotFound:
		return Outcome{Message: MsgNotFound}
	case http.StatusBadRequest:
		return Outcome{Message: MsgBadID}
	default:
		return Outcome{Message: MsgWentWrong}
	}
}

func shipmentFromPayload(p shipmentPayload) *models.Shipment {
	s := &models.Shipment{TD: p.TpdocNum}
	if p.Origin != nil {
		s.OriginCity = p.Origin.City
		s.OriginCountry = p.Origin.Country
	}
	if p.Destination != nil {
		s.DestCity = p.Destination.City
		s.DestCountry = p.Destination.Country
	}
	for _, c := range p.Containers {
		cont := models.Container{
			Number: c.ContainerNum,
			Size:   c.ContainerSize,
			Type:   c.ContainerType,
			ETA:    c.ETAFinalDelivery,
		}
		if c.Latest != nil {
			cont.LatestActivity = c.Latest.Activity
			cont.LatestCity = c.Latest.City
			cont.LatestCountry = c.Latest.Country
			cont.LatestTime = convertDateTime(c.Latest.ActualTime)
		}
		s.Containers = append(s.Containers, cont)
	}
	return s
}

// convertDateTime turns "2025-06-01T15:04:05+0100" into "2025-06-01, 15:04:05"
// by dropping the 4-char timezone suffix and splitting at the separator.
// Strings too short to carry a suffix pass through unchanged.
func convertDateTime(s string) string {
	if len(s) <= 4 {
		return s
	}
	return strings.Replace(s[:len(s)-4], "T", ", ", 1)
}
