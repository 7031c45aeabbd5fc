package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/quantmew/Lithium-sub000/parser"
)

func main() {
	charset := flag.String("charset", "", "transport-level charset label, as from a Content-Type header")
	scripting := flag.Bool("scripting", false, "treat noscript content as if scripting were enabled")
	serialize := flag.Bool("serialize", false, "print the serialized document instead of the tree dump")
	verbose := flag.Bool("v", false, "debug tracing to stderr")
	flag.Parse()

	input, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := parser.Config{
		ScriptingEnabled: *scripting,
		TransportCharset: *charset,
	}
	if *verbose {
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		l.SetOutput(os.Stderr)
		cfg.Logger = l
	}

	doc, errs := parser.Parse(input, cfg)
	if *serialize {
		fmt.Println(parser.Serialize(doc))
	} else {
		fmt.Print(doc.Dump())
	}
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%d:%d %s\n", e.Line, e.Column, e.Code)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
