package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{NameText, NameInteger, NameDate, NameDateRange, NamePoint, NamePlace, NameThesaurus} {
		assert.NotNil(t, r.Get(name), "formatter %q", name)
	}
	assert.Nil(t, r.Get(""))
	assert.Nil(t, r.Get("unknown"))
}

func TestTextFormatter(t *testing.T) {
	v, ok := TextFormatter{}.Format("  anything at all ")
	assert.True(t, ok)
	assert.Equal(t, "  anything at all ", v)
}

func TestIntegerFormatter(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"42", "42", true},
		{" -7 ", "-7", true},
		{"3.9", "3", true},
		{"1984", "1984", true},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := IntegerFormatter{}.Format(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDateFormatter(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"1889-06-18", "1889-06-18T00:00:00Z", true},
		{"1984", "1984-01-01T00:00:00Z", true},
		{"1984-06", "1984-06-01T00:00:00Z", true},
		{"June 18, 1889", "1889-06-18T00:00:00Z", true},
		{"2021-03-04T05:06:07Z", "2021-03-04T05:06:07Z", true},
		{"not a date", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := DateFormatter{}.Format(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDateRangeFormatter(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"1939/1945", "1939 TO 1945", true},
		{"1939 TO 1945", "1939 TO 1945", true},
		{"1939/", "1939 TO *", true},
		{"/1945", "* TO 1945", true},
		{"../1945", "* TO 1945", true},
		{"1940", "1940 TO 1940", true},
		{"* TO *", "* TO *", true},
		// A value with no bounds at all is fully open.
		{"", "* TO *", true},
		{"   ", "* TO *", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := DateRangeFormatter{}.Format(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestPointFormatter(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"48.8584,2.2945", "48.8584,2.2945", true},
		{"48.8584 2.2945", "48.8584,2.2945", true},
		{" 48.8584 , 2.2945 ", "48.8584,2.2945", true},
		{"91,0", "", false},
		{"0,181", "", false},
		{"48.8584", "", false},
		{"a,b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := PointFormatter{}.Format(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestThesaurusFormatter(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"Fine Arts", "fine_arts", true},
		{"Décor & Design", "decor_design", true},
		{"http://vocab.getty.edu/aat/300033618", "300033618", true},
		{"https://example.org/terms#Painting", "painting", true},
		{"  Painting  ", "painting", true},
		{"***", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, ok := ThesaurusFormatter{}.Format(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}
