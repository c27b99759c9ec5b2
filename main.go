package main

import (
	"flag"
	"fmt"
	"os"

	"pageauto/presentation/demo"
)

func main() {
	var cfg demo.Config
	flag.StringVar(&cfg.Backend, "backend", "selenium", "session backend: selenium or playwright")
	flag.BoolVar(&cfg.Headless, "headless", false, "run the browser headless (playwright backend)")
	flag.StringVar(&cfg.PagePath, "page", "examples/github_index.yaml", "page document to load")
	flag.StringVar(&cfg.ScreenshotDir, "shots", "", "directory for action screenshots")
	flag.Parse()

	if err := demo.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
