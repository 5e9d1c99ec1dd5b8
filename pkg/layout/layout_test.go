package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"latin typed on hebrew layout", "akuo", "שלום"},
		{"upper case latin", "AKUO", "שלום"},
		{"hebrew typed on latin layout", "יקךךם", "hello"},
		{"keeps unmapped characters", "akuo 123!", "שלום 123!"},
		{"empty", "", ""},
		{"tie goes to hebrew->latin", "aש", "aa"},
		{"no letters at all", "123 ?!", "123 ?!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Fix(tt.in))
		})
	}
}

func TestRoundTripRecoversLowercase(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"TheQuickBrownFox",
		"qwerty",
	}
	for _, in := range inputs {
		hebrew := Fix(in)
		assert.Equal(t, ToHebrew(in), hebrew, "latin majority must apply the latin->hebrew table")
		assert.Equal(t, strings.ToLower(in), ToLatin(hebrew))
	}
}

func TestUnmappedCharactersPassThrough(t *testing.T) {
	t.Parallel()

	in := "123 ©€ 日本 \t\n"
	assert.Equal(t, in, ToHebrew(in))
	assert.Equal(t, in, ToLatin(in))
	assert.Equal(t, in, Fix(in))
}

func TestConvert(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "שלום", Convert("akuo", ModeToHebrew))
	assert.Equal(t, "akuo", Convert("שלום", ModeToLatin))
	assert.Equal(t, "שלום", Convert("akuo", ModeAuto))
	assert.True(t, ModeAuto.IsValid())
	assert.False(t, Mode("sideways").IsValid())
}

func TestCount(t *testing.T) {
	t.Parallel()

	hebrew, latin := Count("shalom שלום!")
	assert.Equal(t, 4, hebrew)
	assert.Equal(t, 6, latin)
}
