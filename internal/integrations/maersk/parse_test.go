package maersk

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParse_FullPayload(t *testing.T) {
	body := `{
  "tpdoc_num": "TD1",
  "origin": {"city": "Rotterdam", "country": "NL"},
  "destination": {"city": "Shanghai", "country": "CN"},
  "containers": [
    {
      "container_num": "MRKU1234567",
      "container_size": "40",
      "container_type": "DRY",
      "eta_final_delivery": "2025-06-10",
      "latest": {"activity": "Load", "city": "Rotterdam", "country": "NL", "actual_time": "2025-06-01T15:04:05+0100"}
    }
  ]
}`
	out := Parse(Response{ID: "MRKU1234567", StatusCode: http.StatusOK, Body: []byte(body)})
	require.Empty(t, out.Message)
	require.NotNil(t, out.Shipment)

	s := out.Shipment
	require.Equal(t, "TD1", s.TD)
	require.Equal(t, "Rotterdam", s.OriginCity)
	require.Equal(t, "NL", s.OriginCountry)
	require.Equal(t, "Shanghai", s.DestCity)
	require.Equal(t, "CN", s.DestCountry)
	require.Len(t, s.Containers, 1)

	c := s.Containers[0]
	require.Equal(t, "MRKU1234567", c.Number)
	require.Equal(t, "40", c.Size)
	require.Equal(t, "DRY", c.Type)
	require.Equal(t, "2025-06-10", c.ETA)
	require.Equal(t, "Load", c.LatestActivity)
	require.Equal(t, "2025-06-01, 15:04:05", c.LatestTime)
}

func TestParse_MissingObjectsDegrade(t *testing.T) {
	out := Parse(Response{StatusCode: http.StatusOK, Body: []byte(`{"containers":[{"container_num":"MRKU1234567"}]}`)})
	require.NotNil(t, out.Shipment)
	require.Empty(t, out.Shipment.TD)
	require.Empty(t, out.Shipment.OriginCity)
	require.Len(t, out.Shipment.Containers, 1)
	require.Empty(t, out.Shipment.Containers[0].LatestActivity)
}

func TestParse_MissingContainersDegrade(t *testing.T) {
	out := Parse(Response{StatusCode: http.StatusOK, Body: []byte(`{"tpdoc_num":"X1"}`)})
	require.NotNil(t, out.Shipment)
	require.Equal(t, "X1", out.Shipment.TD)
	require.Empty(t, out.Shipment.Containers)
}

func TestParse_StatusClassification(t *testing.T) {
	require.Equal(t, MsgNotFound, Parse(Response{StatusCode: http.StatusNotFound}).Message)
	require.Equal(t, MsgBadID, Parse(Response{StatusCode: http.StatusBadRequest}).Message)
	require.Equal(t, MsgWentWrong, Parse(Response{StatusCode: http.StatusInternalServerError}).Message)
	require.Equal(t, MsgWentWrong, Parse(Response{StatusCode: http.StatusTeapot}).Message)
}

func TestParse_TransportFailureMarker(t *testing.T) {
	out := Parse(Response{Err: errors.New("dial tcp: i/o timeout")})
	require.Nil(t, out.Shipment)
	require.Equal(t, MsgWentWrong, out.Message)
}

func TestParse_Undecodable200(t *testing.T) {
	out := Parse(Response{StatusCode: http.StatusOK, Body: []byte("<html>gateway error</html>")})
	require.Equal(t, MsgWentWrong, out.Message)
}

func TestConvertDateTime(t *testing.T) {
	require.Equal(t, "2025-06-01, 15:04:05", convertDateTime("2025-06-01T15:04:05+0100"))
	// No separator left after trimming: the date part stays as-is.
	require.Equal(t, "2025-06-01", convertDateTime("2025-06-01T150"))
	// Too short to carry a timezone suffix: passed through unchanged.
	require.Equal(t, "", convertDateTime(""))
	require.Equal(t, "T12", convertDateTime("T12"))
}
