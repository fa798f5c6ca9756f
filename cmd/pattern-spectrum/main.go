// Command pattern-spectrum prints the attribute granulometry of an image.
// Area spectra are folded into radius bins before printing; the output is
// one "bin value" pair per line, suitable for plotting.
//
// Usage: pattern-spectrum -lambda N [-attribute area] [-channel gray] src
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fbie/morphology"
	"github.com/fbie/morphology/internal/imgio"
)

func main() {
	lambda := flag.Int("lambda", 5000, "upper limit on attribute values")
	attribute := flag.String("attribute", "area", "attribute kind: area, equal-sides or fill-ratio")
	channel := flag.String("channel", "gray", "color channel: gray, red, green or blue")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: pattern-spectrum [flags] src")
		flag.PrintDefaults()
		os.Exit(2)
	}
	src := flag.Arg(0)

	ch, err := imgio.ParseChannel(*channel)
	if err != nil {
		log.Fatal(err)
	}
	img, err := imgio.LoadGray(src, ch)
	if err != nil {
		log.Fatal(err)
	}

	kind := morphology.AttributeKind(*attribute)
	spectrum, err := morphology.Granulometry(img, *lambda, kind)
	if err != nil {
		log.Fatal(err)
	}
	if kind == morphology.Area {
		// Plot the area spectrum over the radius of the equivalent disc
		// rather than the raw pixel count.
		spectrum = morphology.RadiusSpectrum(spectrum)
	}

	fmt.Printf("#%s:%s:%d\n", src, kind, *lambda)
	for i, v := range spectrum {
		fmt.Printf("%d %d\n", i, v)
	}
}
