// Command routedemo is a small deployment-style CLI built on cliway. It
// registers a handful of routes, resolves os.Args against them and prints
// the bound arguments, and doubles as a completion helper when invoked as
//
//	routedemo __complete "deploy pr"
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cliway/cliway"
	"github.com/cliway/cliway/util"
)

func main() {
	router := cliway.NewRouter(
		cliway.WithEnum("environment", "dev", "staging", "prod"),
	)

	router.Route("deploy {env:environment} --version {ver?} --force,-f|skip-confirmation",
		printArgs, cliway.WithDescription("deploy a release to an environment"))
	router.Route("deploy status {env:environment?}",
		printArgs, cliway.WithDescription("show deployment status"))
	router.Route("logs {service} --since {cutoff:datetime?} --follow,-F?",
		printArgs, cliway.WithDescription("tail service logs"))
	router.Route("config set {key} {*values}",
		printArgs, cliway.WithDescription("set a configuration value"))
	router.Route("wait {delay:duration}",
		printArgs, cliway.WithDescription("sleep before the next step"))

	collection, err := router.Build()
	if err != nil {
		for _, e := range router.Errs() {
			fmt.Fprintf(os.Stderr, "Error: %v\n", e)
		}
		os.Exit(1)
	}

	argv := os.Args[1:]

	if len(argv) == 2 && argv[0] == "__complete" {
		for _, candidate := range collection.Complete(argv[1]) {
			if candidate.Description != "" {
				fmt.Printf("%s\t%s\n", candidate.Value, candidate.Description)
			} else {
				fmt.Println(candidate.Value)
			}
		}
		return
	}

	if len(argv) == 0 || (len(argv) == 1 && argv[0] == "--help") {
		printUsage(collection)
		return
	}

	result := collection.Resolve(argv)
	if !result.Matched {
		fmt.Fprintf(os.Stderr, "no route matched: %s\n", result.Reason)
		if result.Closest != nil {
			fmt.Fprintf(os.Stderr, "closest route: %s\n", result.Closest.Pattern)
		}
		if result.Cause != nil {
			fmt.Fprintf(os.Stderr, "cause: %v\n", result.Cause)
		}
		os.Exit(1)
	}

	handler := result.Endpoint.Handler.(func(*cliway.MatchResult))
	handler(result)
}

func printUsage(collection *cliway.EndpointCollection) {
	fmt.Println("Usage:")
	collection.DescribeUsage(os.Stdout)

	candidates := collection.Complete("")
	if len(candidates) == 0 {
		return
	}

	fmt.Println("\nStart with:")
	if !util.IsTerminal() {
		for _, candidate := range candidates {
			fmt.Printf("  %s\n", candidate.Value)
		}
		return
	}

	width := util.Min(util.TerminalWidth(), 100)
	col := 0
	for _, candidate := range candidates {
		if col > 0 && col+len(candidate.Value)+2 > width {
			fmt.Println()
			col = 0
		}
		fmt.Printf("  %s", candidate.Value)
		col += len(candidate.Value) + 2
	}
	fmt.Println()
}

func printArgs(result *cliway.MatchResult) {
	fmt.Printf("matched: %s\n", result.Endpoint.Pattern)

	for it := result.Args.Front(); it != nil; it = it.Next() {
		fmt.Printf("  %s = %v\n", *it.Key, it.Value)
	}

	if len(result.Passthrough) > 0 {
		fmt.Printf("  passthrough: %s\n", strings.Join(result.Passthrough, " "))
	}
}
