package main

import (
	"flag"
	"fmt"
	"os"

	fitsschema "github.com/open-gamma-ray-astro/fits-schema"
	"github.com/open-gamma-ray-astro/fits-schema/i18n"
	"github.com/open-gamma-ray-astro/fits-schema/report"
	"github.com/open-gamma-ray-astro/fits-schema/schemafile"
	"github.com/open-gamma-ray-astro/fits-schema/units"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "dim":
		dimCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "fits-schema CLI\n\nUsage:\n  fits-schema check -schema schema.yaml [-name NAME] [-format text|json] [-lang CODE] [-require-units] [-concurrency N] instance.yaml\n  fits-schema dim -unit UNIT [-to UNIT]\n\nNotes:\n  - check exits 1 when the instance violates its schema and 2 on usage errors.\n  - dim prints the SI dimension of a FITS unit string; with -to it also reports convertibility.")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath string
	var name string
	var format string
	var lang string
	var requireUnits bool
	var concurrency int
	fs.StringVar(&schemaPath, "schema", "", "schema document (YAML)")
	fs.StringVar(&name, "name", "", "document name when the file bundles several schemas")
	fs.StringVar(&format, "format", "text", "report format: text or json")
	fs.StringVar(&lang, "lang", "", "diagnostic message language (e.g. en, ja)")
	fs.BoolVar(&requireUnits, "require-units", false, "report unit-constrained columns that carry no unit")
	fs.IntVar(&concurrency, "concurrency", 1, "number of columns to check concurrently")
	_ = fs.Parse(args)
	if schemaPath == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	var schema fitsschema.TableSchema
	if name != "" {
		schema, err = schemafile.ImportYAMLNamed(data, name)
	} else {
		schema, err = schemafile.ImportYAML(data)
	}
	if err != nil {
		fatalf("loading schema: %v", err)
	}

	tab, err := loadTable(fs.Arg(0))
	if err != nil {
		fatalf("reading instance: %v", err)
	}

	if lang != "" {
		i18n.SetLanguage(lang)
	}
	ds := fitsschema.Validate(schema, tab, fitsschema.Options{
		RequireUnits: requireUnits,
		Concurrency:  concurrency,
	})

	switch format {
	case "text":
		if err := report.Write(os.Stdout, ds); err != nil {
			fatalf("writing report: %v", err)
		}
	case "json":
		b, err := report.JSON(ds)
		if err != nil {
			fatalf("encoding report: %v", err)
		}
		fmt.Println(string(b))
	default:
		fatalf("unknown format %q (want text or json)", format)
	}
	if ds.HasErrors() {
		os.Exit(1)
	}
}

func dimCmd(args []string) {
	fs := flag.NewFlagSet("dim", flag.ExitOnError)
	var unit string
	var to string
	fs.StringVar(&unit, "unit", "", "FITS unit string to analyze")
	fs.StringVar(&to, "to", "", "second unit to test convertibility against")
	_ = fs.Parse(args)
	if unit == "" {
		fs.Usage()
		os.Exit(2)
	}
	d, err := units.Parse(unit)
	if err != nil {
		fatalf("parsing unit: %v", err)
	}
	fmt.Println(d)
	if to != "" {
		if units.Standard().Convertible(unit, to) {
			fmt.Printf("convertible to %q\n", to)
		} else {
			fmt.Printf("not convertible to %q\n", to)
			os.Exit(1)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
