package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/slides"
)

// Runs the slide parser over a captured model output file. Useful when a
// content prompt produces text the parser drops.
//
// Usage: go run scripts/debug_parser/main.go [-json] output.txt
func main() {
	asJSON := flag.Bool("json", false, "Print records as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: debug_parser [-json] <model-output.txt>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read: %v", err)
	}

	records := slides.Parse(string(data))
	if *asJSON {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			log.Fatalf("marshal: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Recognized %d slides\n\n", len(records))
	for _, r := range records {
		fmt.Printf("Slide %d\n  Heading: %s\n  Explanation: %s\n\n", r.SlideNumber, r.Heading, r.Explanation)
	}
}
