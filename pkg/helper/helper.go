package helper

import (
	"fmt"
	"strings"
	"unicode"
)

// method to convert from seconds to minutes:seconds.milliseconds
func SecondsToMinutes(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	total := int64(seconds*1000 + 0.5)
	minutes := total / 60000
	millis := total % 60000
	return fmt.Sprintf("%d:%02d.%03d", minutes, millis/1000, millis%1000)
}

// SecondsToDiff renders a gap like "+0.123s", right aligned to 9 chars.
func SecondsToDiff(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	diff := fmt.Sprintf("+%.3fs", seconds)
	chars := len(diff)
	if chars < 9 {
		// add spaces to the left
		diff = strings.Repeat(" ", 9-chars) + diff
	}
	return diff
}

// method to convert to seconds and 3 milliseconds
func ToSectorTime(t float64) string {
	if t <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", t)
}

// GetDriverCodeName builds a three letter code from a full name the way the
// timing screens do: first three letters of the last name.
func GetDriverCodeName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	last := words[len(words)-1]
	// "Carlos Sainz Jr." keeps the surname
	if len(words) > 1 && strings.HasSuffix(last, ".") {
		last = words[len(words)-2]
	}
	letters := []rune{}
	for _, r := range last {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
		if len(letters) == 3 {
			break
		}
	}
	return string(letters)
}
