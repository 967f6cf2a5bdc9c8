// Package main is the entry point for the xmlsearch tool.
// xmlsearch queries the XML search service and prints ranked, highlighted
// results with a page bar.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/f4ah6o/xmlsearch-go/internal/config"
	"github.com/f4ah6o/xmlsearch-go/internal/render"
	"github.com/f4ah6o/xmlsearch-go/internal/request"
	"github.com/f4ah6o/xmlsearch-go/internal/response"
	"github.com/f4ah6o/xmlsearch-go/internal/xmlsearch"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("xmlsearch: ")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]

	switch subcommand {
	case "search":
		runSearch(os.Args[2:])
	case "request":
		runRequest(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `xmlsearch - Query the XML search service from the command line

Usage:
  xmlsearch search <QUERY> [options]
  xmlsearch request <QUERY> [options]
  xmlsearch help

Commands:
  search      Send a search request and print the results
  request     Print the XML request document without sending it
  help        Show this help message

Examples:
  xmlsearch search "golang generics"
  xmlsearch search "release notes" --host go.dev --page 1
  xmlsearch search "weather" --lr 213 --format json
  xmlsearch request "tls" --site pkg.go.dev/crypto --group site --group-mode deep

Credentials are read from the config file (see --config) or from the
XMLSEARCH_USER and XMLSEARCH_KEY environment variables.

For more information on a command, use:
  xmlsearch <command> -h
`)
}

// searchFlags are shared by the search and request subcommands.
type searchFlags struct {
	configPath string
	host       string
	site       string
	domain     string
	category   int
	theme      int
	geo        int
	lr         int
	page       int
	limit      int
	sort       string
	group      string
	groupMode  string
	format     string
	showReq    bool
}

func (sf *searchFlags) register(fs *flag.FlagSet) {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	fs.StringVar(&sf.configPath, "config", defaultConfig, "Path to config.toml")
	fs.StringVar(&sf.host, "host", "", "Restrict results to a host")
	fs.StringVar(&sf.site, "site", "", "Restrict results to a site (host with path prefix)")
	fs.StringVar(&sf.domain, "domain", "", "Restrict results to a domain zone")
	fs.IntVar(&sf.category, "cat", 0, "Catalogue category code")
	fs.IntVar(&sf.theme, "theme", 0, "Catalogue theme code")
	fs.IntVar(&sf.geo, "geo", 0, "Catalogue region code")
	fs.IntVar(&sf.lr, "lr", 0, "Language-region code")
	fs.IntVar(&sf.page, "page", 0, "Page index (0-based)")
	fs.IntVar(&sf.limit, "limit", request.DefaultLimit, "Results per page")
	fs.StringVar(&sf.sort, "sort", "rlv", "Sort order: rlv (relevance) or tm (modification time)")
	fs.StringVar(&sf.group, "group", "none", "Grouping: none or site")
	fs.StringVar(&sf.groupMode, "group-mode", "flat", "Group mode: flat, deep, or wide")
	fs.StringVar(&sf.format, "format", "text", "Output format: text, json, yaml, or markdown")
	fs.BoolVar(&sf.showReq, "show-request", false, "Print the request document to stderr")
}

// build turns the flags into a search request, applying [snippets] from cfg.
func (sf *searchFlags) build(query string, cfg *config.Config) (request.SearchRequest, error) {
	req := request.New(query)
	req.Host = sf.host
	req.Site = sf.site
	req.Domain = sf.domain
	req.Category = sf.category
	req.Theme = sf.theme
	req.Geo = sf.geo
	req.LR = sf.lr
	req.Page = sf.page
	req.Limit = sf.limit

	var err error
	if req.Sort, err = request.ParseSort(sf.sort); err != nil {
		return req, err
	}
	if req.Group, err = request.ParseGroup(sf.group); err != nil {
		return req, err
	}
	if req.GroupMode, err = request.ParseGroupMode(sf.groupMode); err != nil {
		return req, err
	}
	if req.Options, err = cfg.Options(); err != nil {
		return req, err
	}
	return req, nil
}

func parseArgs(name string, args []string, usage string) (*searchFlags, string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	sf := &searchFlags{}
	sf.register(fs)

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	fs.Parse(args)

	// Flags may follow the query.
	query := ""
	if fs.NArg() >= 1 {
		query = fs.Arg(0)
		fs.Parse(fs.Args()[1:])
	}
	if query == "" && sf.host == "" {
		fmt.Fprintf(os.Stderr, "Error: a query or --host is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
	return sf, query
}

func runSearch(args []string) {
	sf, query := parseArgs("search", args, `Usage: xmlsearch search <QUERY> [options]

Send a search request and print the results.

Arguments:
  QUERY       Search query in the service's query language

Options:
`)

	format, err := render.ParseFormat(sf.format)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cfg, err := config.Load(sf.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	req, err := sf.build(query, cfg)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	client, err := xmlsearch.New(cfg.Client())
	if err != nil {
		if errors.Is(err, xmlsearch.ErrConfiguration) {
			log.Fatalf("%v. Set user and key in %s or %s/%s", err, sf.configPath, config.EnvUser, config.EnvKey)
		}
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	resp, err := client.Search(ctx, req)
	if sf.showReq {
		fmt.Fprintln(os.Stderr, client.LastRequest())
	}
	if err != nil {
		var svcErr *response.ServiceError
		if errors.As(err, &svcErr) && svcErr.Code == 15 {
			// Code 15 means nothing matched; print an empty report.
			if err := render.Write(os.Stdout, format, render.Report{Query: query}); err != nil {
				log.Fatalf("Failed to write output: %v", err)
			}
			return
		}
		log.Fatalf("Search failed: %v", err)
	}

	if err := render.Write(os.Stdout, format, render.NewReport(query, resp)); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func runRequest(args []string) {
	sf, query := parseArgs("request", args, `Usage: xmlsearch request <QUERY> [options]

Print the XML request document that search would send, without sending it.

Options:
`)

	cfg, err := config.Load(sf.configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	req, err := sf.build(query, cfg)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	doc, err := xmlsearch.Document(req)
	if err != nil {
		log.Fatalf("Invalid request: %v", err)
	}
	os.Stdout.Write(doc)
	fmt.Println()
}
