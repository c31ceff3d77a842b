package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	cases := map[float64]string{
		0:          "Zero Rupees Only",
		0.75:       "Zero Rupees and Seventy Five Paise Only",
		1:          "One Rupees Only",
		19:         "Nineteen Rupees Only",
		40:         "Forty Rupees Only",
		100:        "One Hundred Rupees Only",
		3999:       "Three Thousand Nine Hundred Ninety Nine Rupees Only",
		4946.99:    "Four Thousand Nine Hundred Forty Six Rupees and Ninety Nine Paise Only",
		1234567.5:  "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Rupees and Fifty Paise Only",
		100000000:  "Ten Crore Rupees Only",
		999999999:  "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Rupees Only",
		20005:      "Twenty Thousand Five Rupees Only",
		1000000000: "Amount too large Rupees Only",
		-12.05:     "Minus Twelve Rupees and Five Paise Only",
		0.004:      "Zero Rupees Only",
		0.005:      "Zero Rupees and One Paise Only",
	}
	for in, want := range cases {
		assert.Equal(t, want, Words(in), "words(%v)", in)
	}
}

func TestWordsAlwaysEndsWithOnly(t *testing.T) {
	for _, v := range []float64{0, 1.1, 12345.67, 98765432.1, 5e9} {
		w := Words(v)
		assert.Regexp(t, `^\S.* Only$`, w)
		assert.NotContains(t, w, "  ")
	}
}
