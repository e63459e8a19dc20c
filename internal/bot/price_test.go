package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"50000", 50000, false},
		{"50,000", 50000, false},
		{" 1,234,567 ", 1234567, false},
		{"0", 0, false},
		{"", 0, true},
		{"-5000", 0, true},
		{"پنجاه هزار", 0, true},
		{"50.5", 0, true},
	}
	for _, tc := range cases {
		got, err := ParsePrice(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		assert.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "0", FormatPrice(0))
	assert.Equal(t, "999", FormatPrice(999))
	assert.Equal(t, "1,000", FormatPrice(1000))
	assert.Equal(t, "50,000", FormatPrice(50000))
	assert.Equal(t, "1,234,567", FormatPrice(1234567))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, v := range []int64{1, 999, 1000, 123456789} {
		parsed, err := ParsePrice(FormatPrice(v))
		assert.NoError(t, err)
		assert.Equal(t, v, parsed)
	}
}
