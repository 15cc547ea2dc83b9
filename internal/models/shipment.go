package models

// Shipment is one tracked transport document as the Maersk API reports it.
// Empty string fields mean the API did not return the value.
type Shipment struct {
	TD            string
	OriginCity    string
	OriginCountry string
	DestCity      string
	DestCountry   string
	Containers    []Container
}

// Container keeps the order the API returned it in. The latest-event quartet
// is meaningful only when all four fields are present.
type Container struct {
	Number string
	Size   string
	Type   string
	ETA    string

	LatestActivity string
	LatestCity     string
	LatestCountry  string
	LatestTime     string
}
