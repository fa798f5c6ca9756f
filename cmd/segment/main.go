// Command segment computes a naive foreground model for each given image:
// the area closing at the estimated ultimate attribute minus the image.
//
// Usage: segment img1 [img2 ...]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbie/morphology"
	"github.com/fbie/morphology/internal/imgio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: segment img1 [img2 ...]")
		os.Exit(2)
	}

	for _, src := range os.Args[1:] {
		img, err := imgio.LoadGray(src, imgio.Gray)
		if err != nil {
			log.Printf("could not load %q: %v", src, err)
			continue
		}

		fg, err := morphology.NaiveSegment(img)
		if err != nil {
			log.Printf("segmenting %q: %v", src, err)
			continue
		}

		dst := strings.TrimSuffix(src, filepath.Ext(src)) + "-foreground.png"
		if err := imgio.Save(dst, fg); err != nil {
			log.Printf("saving %q: %v", dst, err)
			continue
		}
		fmt.Println(dst)
	}
}
