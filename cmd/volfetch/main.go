// Command volfetch downloads sample SDF volume datasets for feeding
// into mesher's -volume mode. Sources use go-getter URL syntax, so
// plain HTTP, git subdirectories, and archives all work.
package main

import (
	"flag"
	"log"
	"os"

	get "github.com/hashicorp/go-getter"
)

func main() {
	var (
		url = flag.String("url", "", "go-getter source URL of the volume dataset")
		out = flag.String("o", "./volumes", "output dir path")
	)
	flag.Parse()

	if *url == "" {
		panic("source url required")
	}

	if *out == "" {
		panic("output dir path required")
	}

	if err := os.RemoveAll(*out); err != nil {
		panic(err)
	}

	log.Default().Printf("start downloading volumes %s", *out)

	if err := get.Get(*out, *url); err != nil {
		panic(err)
	}

	log.Default().Printf("done downloading volumes %s", *out)
}
