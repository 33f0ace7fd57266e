// resultfmt converts result documents between the verbose and compact wire
// formats. The input format is auto-detected, so it can also be used to
// normalize documents of unknown provenance.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/pflag"

	resultfu "github.com/result-fu/result-fu"
)

func main() {
	input := pflag.StringP("input", "i", "", "the input file (defaults to stdin)")
	output := pflag.StringP("output", "o", "", "the output file (defaults to stdout)")
	compact := pflag.BoolP("compact", "c", false, "emit the compact error encoding")
	indent := pflag.String("indent", "", "indent the output with the given string")
	pflag.Parse()

	var in []byte
	var err error
	if *input == "" {
		in, err = ioutil.ReadAll(os.Stdin)
	} else {
		in, err = ioutil.ReadFile(*input)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading input: "+err.Error())
		os.Exit(1)
	}

	result := resultfu.DecodeJSON[json.RawMessage](in)
	doc := resultfu.Encode(result, *compact)

	var out []byte
	if *indent != "" {
		out, err = jsoniter.MarshalIndent(doc, "", *indent)
	} else {
		out, err = jsoniter.Marshal(doc)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error marshaling output: "+err.Error())
		os.Exit(1)
	}
	out = append(out, '\n')

	if *output == "" {
		os.Stdout.Write(out)
	} else if err := ioutil.WriteFile(*output, out, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "error writing output: "+err.Error())
		os.Exit(1)
	}
}
