// Command spotless runs the dust-removal pipeline on a single frame:
// threshold a detection probability map into a dust mask, dilate it for
// coverage, inpaint the masked region, and composite the result back
// over the original. The probability map comes from the external
// detection step as a grayscale image.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yahyarahhawi/Spotless-Film/inpaint"
	"github.com/yahyarahhawi/Spotless-Film/probmap"
	"github.com/yahyarahhawi/Spotless-Film/profiler"
	"github.com/yahyarahhawi/Spotless-Film/session"
	"github.com/yahyarahhawi/Spotless-Film/util"
)

func main() {
	var (
		imagePath   string
		probMapPath string
		outPath     string
		maskOutPath string
		threshold   float64
		radius      float64
		debug       bool
		profile     bool
	)

	flag.StringVar(&imagePath, "image", "", "Path to the scanned frame (PNG or JPEG)")
	flag.StringVar(&probMapPath, "probmap", "", "Path to the detection probability map (grayscale image)")
	flag.StringVar(&outPath, "out", "spotless.png", "Path for the cleaned output image")
	flag.StringVar(&maskOutPath, "mask-out", "", "Optional path to also write the dilated dust mask")
	flag.Float64Var(&threshold, "threshold", float64(probmap.DefaultThreshold), "Detection threshold in (0, 1)")
	flag.Float64Var(&radius, "radius", 5, "Inpainting neighborhood radius in pixels")
	flag.BoolVar(&debug, "debug", false, "Print per-step progress")
	flag.BoolVar(&profile, "profile", false, "Print per-stage timing on exit")
	flag.Parse()

	if imagePath == "" || probMapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: spotless -image frame.png -probmap probs.png [-out cleaned.png]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	timer := profiler.New()

	img, err := util.LoadImage(imagePath)
	if err != nil {
		log.Fatalf("loading image: %v", err)
	}
	pm, err := util.LoadProbabilityMap(probMapPath)
	if err != nil {
		log.Fatalf("loading probability map: %v", err)
	}

	b := img.Bounds()
	s := session.New()
	s.SetDebug(debug)

	stop := timer.Track("threshold")
	err = s.CompleteDetection(pm, b.Dx(), b.Dy(), float32(threshold))
	stop()
	if err != nil {
		log.Fatalf("detection: %v", err)
	}

	stop = timer.Track("dilate")
	removal := s.RemovalMask()
	stop()
	if removal.CountSet() == 0 {
		log.Printf("no dust found above threshold %v; writing the input unchanged", threshold)
		if err := util.SaveImage(outPath, img); err != nil {
			log.Fatalf("saving output: %v", err)
		}
		return
	}

	if maskOutPath != "" {
		if err := util.SaveMask(maskOutPath, removal); err != nil {
			log.Fatalf("saving mask: %v", err)
		}
	}

	inp := &inpaint.Telea{Radius: float32(radius)}
	stop = timer.Track("inpaint")
	filled, err := inp.Inpaint(img, removal)
	stop()
	if err != nil {
		log.Fatalf("inpainting: %v", err)
	}

	stop = timer.Track("composite")
	out, err := s.Composite(img, filled)
	stop()
	if err != nil {
		log.Fatalf("compositing: %v", err)
	}

	if err := util.SaveImage(outPath, out); err != nil {
		log.Fatalf("saving output: %v", err)
	}

	log.Printf("cleaned %d px of dust -> %s", removal.CountSet(), outPath)
	if profile {
		fmt.Print(timer.Report())
	}
}
