// Package pprint: QuantumCalc ASCII banner.
package pprint

import "fmt"

// PrintBanner prints the QuantumCalc banner with version and tagline.
func PrintBanner(version, buildDate string) {
	lines := []string{
		StylePrimary.Render("   ██████╗  ██████╗ █████╗ ██╗      ██████╗"),
		StylePrimary.Render("  ██╔═══██╗██╔════╝██╔══██╗██║     ██╔════╝"),
		StyleAccent.Render("  ██║   ██║██║     ███████║██║     ██║"),
		StyleAccent.Render("  ██║▄▄ ██║██║     ██╔══██║██║     ██║"),
		StyleText.Render("  ╚██████╔╝╚██████╗██║  ██║███████╗╚██████╗"),
		StyleMuted.Render("   ╚══▀▀═╝  ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝"),
	}

	fmt.Fprintln(Out)
	for _, l := range lines {
		fmt.Fprintln(Out, l)
	}
	fmt.Fprintln(Out)

	tagline := StyleMuted.Render("  QuantumCalc self-check harness")
	versionStr := StyleAccent.Render("  " + version)
	if buildDate != "" {
		versionStr += StyleMuted.Render("  built " + buildDate)
	}

	fmt.Fprintln(Out, tagline)
	fmt.Fprintln(Out, versionStr)
	fmt.Fprintln(Out)
}
