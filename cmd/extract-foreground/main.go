// Command extract-foreground separates foreground structures from the
// background with an ultimate attribute closing, binarizes the result and
// removes small specks with an area opening.
//
// Usage: extract-foreground [flags] src
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbie/morphology"
	"github.com/fbie/morphology/internal/imgio"
)

func main() {
	attribute := flag.String("attribute", "area", "attribute kind: area, equal-sides or fill-ratio")
	channel := flag.String("channel", "gray", "color channel: gray, red, green or blue")
	alpha := flag.Float64("alpha", 0.25, "scale on the estimated ultimate attribute")
	epsilon := flag.Float64("epsilon", 0, "shift on the estimated ultimate attribute")
	level := flag.Int("threshold", 10, "binarization threshold on the foreground model")
	speck := flag.Int("speck", 150, "area opening threshold removing binarization specks")
	out := flag.String("o", "", "output file (default: <src>-mask.png)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: extract-foreground [flags] src")
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

	uac, err := morphology.UltimateAttributeClosing(img, morphology.AttributeKind(*attribute), *alpha, *epsilon)
	if err != nil {
		log.Fatal(err)
	}

	// Binarize the foreground model and open away the specks the
	// binarization leaves behind.
	for i, p := range uac.Pix {
		if int(p) >= *level {
			uac.Pix[i] = 255
		} else {
			uac.Pix[i] = 0
		}
	}
	if err := morphology.OpenInPlace(uac, *speck, morphology.Area); err != nil {
		log.Fatal(err)
	}

	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + "-mask.png"
	}
	if err := imgio.Save(dst, uac); err != nil {
		log.Fatal(err)
	}
	fmt.Println(dst)
}
