package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const overflowWords = "Amount too large"

var (
	ones = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
		"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
	}
	tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// Words spells out an amount in rupees and paise using Indian digit grouping,
// e.g. 1234567.5 -> "Twelve Lakh Thirty Four Thousand Five Hundred Sixty
// Seven Rupees and Fifty Paise Only".
func Words(amount float64) string {
	if !Finite(amount) {
		return overflowWords + " Rupees Only"
	}
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	rupeePart, paisePart, _ := strings.Cut(fixed, ".")
	paise, _ := strconv.Atoi(paisePart)

	var parts []string
	if negative {
		parts = append(parts, "Minus")
	}
	if strings.TrimLeft(rupeePart, "0") == "" {
		parts = append(parts, "Zero Rupees")
	} else {
		parts = append(parts, groupWords(rupeePart), "Rupees")
	}
	if paise > 0 {
		parts = append(parts, "and", twoDigitWords(paise), "Paise")
	}
	parts = append(parts, "Only")
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// groupWords words a non-negative integer given in decimal digits, up to
// nine digits: crore (2), lakh (2), thousand (2), hundreds (3).
func groupWords(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if len(digits) > 9 {
		return overflowWords
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return ""
	}

	crore := n / 10000000
	lakh := n / 100000 % 100
	thousand := n / 1000 % 100
	hundreds := n % 1000

	var b strings.Builder
	add := func(words string) {
		if words == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(words)
	}
	if crore > 0 {
		add(twoDigitWords(crore) + " Crore")
	}
	if lakh > 0 {
		add(twoDigitWords(lakh) + " Lakh")
	}
	if thousand > 0 {
		add(twoDigitWords(thousand) + " Thousand")
	}
	if h := hundreds / 100; h > 0 {
		add(ones[h] + " Hundred")
	}
	if rest := hundreds % 100; rest > 0 {
		add(twoDigitWords(rest))
	}
	return b.String()
}

func twoDigitWords(n int) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
