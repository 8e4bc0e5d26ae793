package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/armsim/referenceframe"
	"go.viam.com/armsim/utils"
)

// printf prints a message with a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	_, _ = fmt.Fprintf(w, format+"\n", a...)
}

// parseFloats parses a comma separated list of at most limit numbers.
func parseFloats(s string, limit int) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > limit {
		return nil, errors.Errorf("expected at most %d values, got %d", limit, len(parts))
	}
	values := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", p)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseAngles parses joint angles. Omitted trailing joints are zero.
func parseAngles(s string, degrees bool) (referenceframe.JointAngles, error) {
	var angles referenceframe.JointAngles
	values, err := parseFloats(s, referenceframe.NumJoints)
	if err != nil {
		return angles, errors.Wrap(err, "cannot parse angles")
	}
	for i, v := range values {
		if degrees {
			v = utils.DegToRad(v)
		}
		angles[i] = v
	}
	return angles, nil
}

// parsePoint parses exactly three coordinates.
func parsePoint(s string) (r3.Vector, error) {
	values, err := parseFloats(s, 3)
	if err != nil {
		return r3.Vector{}, errors.Wrap(err, "cannot parse point")
	}
	if len(values) != 3 {
		return r3.Vector{}, errors.Errorf("point %q must have three coordinates", s)
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

func formatPoint(p r3.Vector) string {
	return fmt.Sprintf("X:%.4f, Y:%.4f, Z:%.4f", p.X, p.Y, p.Z)
}
