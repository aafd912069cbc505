package ui

import (
	"fmt"

	"github.com/hance08/payops/internal/model"
	"github.com/hance08/payops/internal/service"
	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

func Separator() {
	pterm.Println(pterm.Gray("────────────────────────────────────────"))
}

var toneColors = map[service.Tone]pterm.Color{
	service.ToneSuccess: pterm.FgGreen,
	service.ToneWarning: pterm.FgYellow,
	service.ToneInfo:    pterm.FgCyan,
	service.ToneDanger:  pterm.FgRed,
	service.ToneAccent:  pterm.FgMagenta,
	service.ToneMuted:   pterm.FgGray,
}

// ToneColor maps a status tone onto a terminal colour.
func ToneColor(t service.Tone) pterm.Color {
	if c, ok := toneColors[t]; ok {
		return c
	}
	return pterm.FgDefault
}

// Badge renders a charge status in its colour.
func Badge(status model.ChargeStatus) string {
	label := status.String()
	if label == "" {
		label = "-"
	}
	return ToneColor(service.BadgeTone(status)).Sprint(label)
}

func Gateway(g model.Gateway) string {
	switch g {
	case model.GatewayStripe:
		return pterm.LightMagenta(g.Label())
	case model.GatewayPayPal:
		return pterm.LightBlue(g.Label())
	default:
		return g.Label()
	}
}

func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
