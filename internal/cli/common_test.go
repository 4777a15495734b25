package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{input: "1", want: []int{1}},
		{input: "1,3-5", want: []int{1, 3, 4, 5}},
		{input: "4, 2 ,2-3", want: []int{4, 2, 3}},
		{input: "7-7", want: []int{7}},
		{input: "1,,2", want: []int{1, 2}},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "5-3", wantErr: true},
		{input: "a", wantErr: true},
		{input: "1-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := parseLineRange(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRange)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseLineRange(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParsePoint(t *testing.T) {
	t.Parallel()

	x, y, err := parsePoint("640, 360")
	require.NoError(t, err)
	assert.Equal(t, 640, x)
	assert.Equal(t, 360, y)

	for _, bad := range []string{"", "640", "a,1", "1,b"} {
		_, _, err := parsePoint(bad)
		require.ErrorIs(t, err, ErrInvalidPoint, "parsePoint(%q)", bad)
	}
}
