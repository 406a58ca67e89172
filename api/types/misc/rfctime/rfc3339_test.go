package rfctime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/girder/girderctl/api/types/misc/rfctime"
	"github.com/girder/girderctl/pkg/utils/try"
)

func TestParseRFC3339DateTime(t *testing.T) {
	t.Run("it parses server timestamps with microseconds and offset", func(t *testing.T) {
		actual := try.To(rfctime.ParseRFC3339DateTime(
			"2017-03-02T18:49:35.573000+00:00",
		)).OrFatal(t)

		expected := time.Date(2017, 3, 2, 18, 49, 35, 573000000, time.UTC)
		if !actual.Time().Equal(expected) {
			t.Errorf("wrong time: %s", actual.Time())
		}
	})

	t.Run("it rejects non-timestamps", func(t *testing.T) {
		if _, err := rfctime.ParseRFC3339DateTime("yesterday"); err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}

func TestParseLooseRFC3339(t *testing.T) {
	for _, expr := range []string{
		"2017-03-02T18:49:35.573000+00:00",
		"2017-03-02T18:49:35+00:00",
		"2017-03-02T18:49+00:00",
		"2017-03-02T18:49:35",
		"2017-03-02",
	} {
		t.Run("it accepts "+expr, func(t *testing.T) {
			try.To(rfctime.ParseLooseRFC3339(expr)).OrFatal(t)
		})
	}
}

func TestRFC3339_JSON(t *testing.T) {
	t.Run("it round-trips through json", func(t *testing.T) {
		original := try.To(rfctime.ParseRFC3339DateTime(
			"2017-03-02T18:49:35.573000+00:00",
		)).OrFatal(t)

		buf := try.To(json.Marshal(original)).OrFatal(t)

		restored := rfctime.RFC3339{}
		if err := json.Unmarshal(buf, &restored); err != nil {
			t.Fatal(err)
		}
		if !restored.Equal(original) {
			t.Errorf("wrong time: %s", restored.Time())
		}
	})

	t.Run("null leaves the value untouched", func(t *testing.T) {
		v := rfctime.RFC3339{}
		if err := json.Unmarshal([]byte("null"), &v); err != nil {
			t.Fatal(err)
		}
		if !v.Time().IsZero() {
			t.Errorf("value should stay zero: %s", v.Time())
		}
	})
}
