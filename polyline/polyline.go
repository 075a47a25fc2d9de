package polyline

// Decode converts an encoded polyline string into a slice of lat/lng pairs.
// Implementation follows Google's Encoded Polyline Algorithm Format with the
// standard 1e-5 precision: 5-bit groups offset by 63, zig-zag signed deltas
// accumulated onto a running position. Exact for validly encoded input;
// callers are expected to validate upstream.
func Decode(encoded string) [][2]float64 {
	var points [][2]float64
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		// Extract latitude delta
		shift, result := 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lat += ^(result >> 1)
		} else {
			lat += result >> 1
		}

		// Extract longitude delta
		shift, result = 0, 0
		for {
			if index >= len(encoded) {
				return points
			}
			b := int(encoded[index]) - 63
			index++
			result |= (b & 0x1f) << shift
			shift += 5
			if b < 0x20 {
				break
			}
		}
		if result&1 != 0 {
			lng += ^(result >> 1)
		} else {
			lng += result >> 1
		}

		points = append(points, [2]float64{float64(lat) * 1e-5, float64(lng) * 1e-5})
	}

	return points
}
