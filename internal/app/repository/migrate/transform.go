package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrChannelParse marks a channels value that could not be normalized.
// Rows failing with it are skipped, never fatal to the run.
var ErrChannelParse = errors.New("unparseable channels value")

// parseChannels normalizes the source channels representation into a native
// integer array. The source stores either a JSON array literal (TEXT) or the
// same bytes as a BLOB; both decode the same way. A NULL value stays nil.
func parseChannels(raw []byte) ([]int64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	// Counts are integral, but some detectors exported them as floats.
	var values []float64
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChannelParse, err)
	}

	channels := make([]int64, len(values))
	for i, v := range values {
		channels[i] = int64(v)
	}
	return channels, nil
}

// epochToTime converts the source's epoch-seconds creation time to a UTC
// timestamp. Epochs can be fractional; the fraction carries into
// nanoseconds.
func epochToTime(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
