package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/toyz/quill/internal/diag"
	"github.com/toyz/quill/pkg/quill"
)

func main() {
	var (
		verboseFlag = flag.Bool("verbose", false, "Show resolved template detail for every operation")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		encodeFlag  = flag.Bool("always-encode-body", false, "Lint with the always-encode-body contract variant")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <descriptor-files...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Quill Contract Linter\n")
		fmt.Fprintf(os.Stderr, "Resolves JSON interface descriptors against the built-in directive vocabulary\n")
		fmt.Fprintf(os.Stderr, "and reports the request templates or the configuration error.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s api.json                    # Lint one descriptor\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose contracts/*.json  # Show resolved templates\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one descriptor file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var reporter *diag.Reporter
	switch {
	case *quietFlag:
		reporter = diag.NewQuietReporter()
	case *verboseFlag:
		reporter = diag.NewVerboseReporter()
	default:
		reporter = diag.NewReporter(diag.LevelInfo)
	}

	contract := quill.Contract(quill.NewDefaultContract())
	if *encodeFlag {
		contract = quill.NewAlwaysEncodeBodyContract()
	}

	failed := false
	for _, path := range args {
		if err := lintFile(reporter, contract, path); err != nil {
			reporter.Errorf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func lintFile(reporter *diag.Reporter, contract quill.Contract, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var desc quill.InterfaceDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("invalid descriptor: %w", err)
	}

	metas, err := contract.ParseAndValidateMetadata(&desc)
	if err != nil {
		return err
	}

	reporter.Successf("%s: %d operation(s) resolved", desc.Name, len(metas))
	for _, meta := range metas {
		if meta.Ignored {
			reporter.Infof("  %s  (excluded from request generation)", meta.ConfigKey)
			continue
		}
		reporter.Infof("  %s  %s %s", meta.ConfigKey, meta.Template.Method, meta.Template.Path)
		reportDetail(reporter, meta)
		for _, warning := range meta.Warnings {
			reporter.Warnf("  %s: %s", meta.ConfigKey, warning)
		}
	}
	return nil
}

func reportDetail(reporter *diag.Reporter, meta *quill.MethodMetadata) {
	for _, name := range meta.Template.Headers.Names() {
		reporter.Detailf("header %s: %s", name, strings.Join(meta.Template.Headers.Get(name), ", "))
	}
	switch {
	case meta.Template.Body != "":
		reporter.Detailf("body: literal (%d bytes)", len(meta.Template.Body))
	case meta.Template.BodyTemplate != "":
		reporter.Detailf("body: template %s", meta.Template.BodyTemplate)
	case meta.BodyIndex != nil:
		reporter.Detailf("body: argument %d (%s)", *meta.BodyIndex, meta.BodyType)
	case len(meta.FormParams) > 0:
		reporter.Detailf("body: form %s", strings.Join(meta.FormParams, ", "))
	}
	if meta.URLIndex != nil {
		reporter.Detailf("target: argument %d overrides the base URL", *meta.URLIndex)
	}
	if meta.QueryMapIndex != nil {
		reporter.Detailf("queryMap: argument %d", *meta.QueryMapIndex)
	}
	if meta.HeaderMapIndex != nil {
		reporter.Detailf("headerMap: argument %d", *meta.HeaderMapIndex)
	}
	if meta.ReturnType != nil {
		reporter.Detailf("returns %s", meta.ReturnType)
	}
}
