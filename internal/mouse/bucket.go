package mouse

import "strconv"

// Bucket is one of the fixed distance thresholds recorded samples are grouped by.
type Bucket int

// Thresholds are ascending; a distance maps to the smallest one it does not exceed.
var Thresholds = [...]Bucket{12, 18, 26, 39, 58, 87, 130, 190, 260, 360, 500}

// BucketFor saturates at the largest threshold.
func BucketFor(distance float64) Bucket {
	return Thresholds[bucketIndex(distance)]
}

func bucketIndex(distance float64) int {
	for i, t := range Thresholds {
		if distance <= float64(t) {
			return i
		}
	}
	return len(Thresholds) - 1
}

// thresholdIndex finds b among the thresholds; other values are not buckets.
func thresholdIndex(b Bucket) (int, bool) {
	for i, t := range Thresholds {
		if t == b {
			return i, true
		}
	}
	return 0, false
}

// Range returns the (low, high] distance interval a bucket covers. The first
// bucket starts at zero.
func (b Bucket) Range() (low, high float64) {
	i, ok := thresholdIndex(b)
	if !ok || i == 0 {
		return 0, float64(b)
	}
	return float64(Thresholds[i-1]), float64(b)
}

func (b Bucket) String() string {
	return strconv.Itoa(int(b))
}

// ParseBucket accepts only the stringified thresholds.
func ParseBucket(s string) (Bucket, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	for _, t := range Thresholds {
		if int(t) == n {
			return t, true
		}
	}
	return 0, false
}
