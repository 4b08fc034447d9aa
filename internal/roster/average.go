package roster

import "encoding/json"

// Average returns the arithmetic mean of the numeric elements of a
// grade list, or 0.0 when there are none. Non-numeric entries (which
// can appear in hand-edited registry files) are silently skipped —
// they stay in storage but never count toward the average.
//
// Numbers arrive in different Go types depending on where the list
// came from: grades added by this program are int, values decoded
// from JSON are float64 (or json.Number when a decoder uses
// UseNumber). All of them count.
//
// No rounding happens here; showing two decimals is the UI's job.
func Average(grades []any) float64 {
	var (
		sum   float64
		count int
	)

	for _, g := range grades {
		switch v := g.(type) {
		case int:
			sum += float64(v)
			count++
		case int64:
			sum += float64(v)
			count++
		case float64:
			sum += v
			count++
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				continue
			}
			sum += f
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
