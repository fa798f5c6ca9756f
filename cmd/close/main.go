// Command close performs an attribute closing on an image.
//
// Usage: close -lambda N [-attribute area] [-channel gray] [-o out.png] src
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
	lambda := flag.Int("lambda", 150, "attribute threshold")
	attribute := flag.String("attribute", "area", "attribute kind: area, equal-sides or fill-ratio")
	channel := flag.String("channel", "gray", "color channel: gray, red, green or blue")
	out := flag.String("o", "", "output file (default: <src>-closed.png)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: close [flags] src")
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

	closed, err := morphology.Close(img, *lambda, morphology.AttributeKind(*attribute))
	if err != nil {
		log.Fatal(err)
	}

	dst := *out
	if dst == "" {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + "-closed.png"
	}
	if err := imgio.Save(dst, closed); err != nil {
		log.Fatal(err)
	}
	fmt.Println(dst)
}
