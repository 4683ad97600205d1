package main

import "github.com/urfave/cli/v2"

func punctFlag() cli.Flag {
	return &cli.BoolFlag{Name: "punct", Usage: "keep punctuation tokens in the tree"}
}

func colorFlag() cli.Flag {
	return &cli.BoolFlag{Name: "no-color", Usage: "disable colors"}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "JSON output"}
}

func matchesFlag() cli.Flag {
	return &cli.BoolFlag{Name: "matches", Aliases: []string{"m"}, Usage: "add the overlapping sets to the reports"}
}
