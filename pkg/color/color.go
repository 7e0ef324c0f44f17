// Package color styles diagnostics for the terminal. Styling follows the
// termenv profile of stdout, so NO_COLOR and non-terminal outputs get plain
// text.
package color

import (
	"fmt"

	"github.com/muesli/termenv"
)

var profile = termenv.EnvColorProfile()

// EnableColor forces styling on or off
func EnableColor(enable bool) {
	if enable {
		profile = termenv.ANSI
		return
	}
	profile = termenv.Ascii
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func style(text string, ansi termenv.ANSIColor) string {
	return profile.String(text).Foreground(profile.Convert(ansi)).String()
}

func RedText(text string) string {
	return style(text, termenv.ANSIRed)
}

func BrightRedText(text string) string {
	return style(text, termenv.ANSIBrightRed)
}

func GreenText(text string) string {
	return style(text, termenv.ANSIGreen)
}

func YellowText(text string) string {
	return style(text, termenv.ANSIYellow)
}

func BlueText(text string) string {
	return style(text, termenv.ANSIBlue)
}

func CyanText(text string) string {
	return style(text, termenv.ANSICyan)
}

func GrayText(text string) string {
	return style(text, termenv.ANSIBrightBlack)
}

func BoldText(text string) string {
	return profile.String(text).Bold().String()
}

// Position renders line:col
func Position(line, col int) string {
	return CyanText(fmt.Sprintf("%d:%d", line, col))
}
