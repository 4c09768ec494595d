package mouse

import "testing"

func TestBucketFor(t *testing.T) {
	tests := []struct {
		distance float64
		want     Bucket
	}{
		{0, 12},
		{12, 12},
		{12.0001, 18},
		{100, 130},
		{130, 130},
		{260.5, 360},
		{500, 500},
		{501, 500},
		{5000, 500},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.distance); got != tt.want {
			t.Errorf("BucketFor(%v) = %d, want %d", tt.distance, got, tt.want)
		}
	}
}

func TestBucketForEveryInterval(t *testing.T) {
	for i := 1; i < len(Thresholds); i++ {
		mid := float64(Thresholds[i-1]+Thresholds[i]) / 2
		if got := BucketFor(mid); got != Thresholds[i] {
			t.Errorf("BucketFor(%v) = %d, want %d", mid, got, Thresholds[i])
		}
	}
}

func TestBucketRange(t *testing.T) {
	low, high := Bucket(12).Range()
	if low != 0 || high != 12 {
		t.Errorf("Range(12) = (%v, %v]", low, high)
	}
	low, high = Bucket(190).Range()
	if low != 130 || high != 190 {
		t.Errorf("Range(190) = (%v, %v]", low, high)
	}
}

func TestParseBucket(t *testing.T) {
	if b, ok := ParseBucket("87"); !ok || b != 87 {
		t.Errorf("ParseBucket(87) = %d, %v", b, ok)
	}
	for _, s := range []string{"100", "abc", ""} {
		if _, ok := ParseBucket(s); ok {
			t.Errorf("ParseBucket(%q) accepted", s)
		}
	}
}
