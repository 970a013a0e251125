package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceSelection_Unmarshal(t *testing.T) {
	cases := map[string][]uint{
		`{"service":[3,1]}`:     {3, 1},
		`{"service":["3","1"]}`: {3, 1},
		`{"service":"3, 1"}`:    {3, 1},
		`{"service":5}`:         {5},
		`{"service":""}`:        nil,
		`{"service":null}`:      nil,
		`{}`:                    nil,
	}

	for body, want := range cases {
		var req struct {
			Service ServiceSelection `json:"service"`
		}
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, []uint(req.Service), body)
	}
}

func TestServiceSelection_Invalid(t *testing.T) {
	for _, body := range []string{`{"service":[-1]}`, `{"service":"a,b"}`, `{"service":[0]}`, `{"service":true}`} {
		var req struct {
			Service ServiceSelection `json:"service"`
		}
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestBookingDetail_FlattensBooking(t *testing.T) {
	var d BookingDetail
	d.ID = 4
	d.SalonName = "Studio Bela"
	d.ServiceName = "Corte,Escova"

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.EqualValues(t, 4, out["id"])
	assert.Equal(t, "Studio Bela", out["salon_name"])
	assert.Equal(t, "Corte,Escova", out["service_name"])
}
