package referenceframe

import (
	"encoding/json"
	"testing"

	"go.viam.com/test"
)

func TestParseAxis(t *testing.T) {
	for in, expected := range map[string]Axis{"x": AxisX, "Y": AxisY, " z ": AxisZ} {
		a, err := ParseAxis(in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, a, test.ShouldEqual, expected)
	}
	_, err := ParseAxis("w")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestAxisJSON(t *testing.T) {
	data, err := json.Marshal(DefaultAxes)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldEqual, `["z","y","z","y","z","y","z"]`)

	var axes [NumJoints]Axis
	test.That(t, json.Unmarshal(data, &axes), test.ShouldBeNil)
	test.That(t, axes, test.ShouldResemble, DefaultAxes)

	test.That(t, json.Unmarshal([]byte(`["q","y","z","y","z","y","z"]`), &axes), test.ShouldNotBeNil)
	_, err = json.Marshal(Axis(7))
	test.That(t, err, test.ShouldNotBeNil)
}
