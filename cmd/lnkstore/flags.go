package main

import "flag"

var (
	fetchOwner   *string
	fetchRepo    *string
	fetchTag     *string
	fetchAsset   *string
	fetchOut     *string
	fetchToken   *string
	fetchVerbose *bool
)

// newFetchFlagSet builds the flag set for the fetch subcommand fresh each
// call and points the package-level fetch* variables at its flags.
func newFetchFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	fetchOwner = fs.String("owner", "", "GitHub repository owner")
	fetchRepo = fs.String("repo", "", "GitHub repository name")
	fetchTag = fs.String("tag", "", "release tag")
	fetchAsset = fs.String("asset", "", "release asset file name")
	fetchOut = fs.String("out", "", "path to write the fetched (and, if gzipped, decompressed) asset to")
	fetchToken = fs.String("token", "", "GitHub API token (optional, for private repos or higher rate limits)")
	fetchVerbose = fs.Bool("v", false, "verbose mode")
	return fs
}
