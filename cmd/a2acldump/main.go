// Command a2acldump is a minimal end-to-end harness for the ACL engine: it
// imports a policy file, decides the list for a remote/local identifier
// pair, prints the verdict with its mail-filter action and exits with a
// distinct code for that list. It is not a replacement for the real verify/match/dump
// front-end tools, which stay external collaborators.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/arpa2/go-a2acl/a2id"
	"github.com/arpa2/go-a2acl/acl"
	"github.com/arpa2/go-a2acl/policyfile"
	"github.com/rs/zerolog"
)

// Exit codes, one per list (unlike MailAction, which maps Blacklist and
// Abandoned to the same action): 0 Whitelist, 1 Greylist, 2 Blacklist,
// 3 Abandoned, 4 any other error.
const (
	exitWhitelist = 0
	exitGreylist  = 1
	exitBlacklist = 2
	exitAbandoned = 3
	exitError     = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("a2acldump", flag.ContinueOnError)
	policyPath := fs.String("policy", os.Getenv("A2ACL_POLICY_PATH"), "path to the ACL policy text file")
	remoteArg := fs.String("remote", "", "remote identifier")
	localArg := fs.String("local", "", "local identifier")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	if *policyPath == "" || *remoteArg == "" || *localArg == "" {
		fmt.Fprintln(os.Stderr, "usage: a2acldump -policy FILE -remote ID -local ID")
		return exitError
	}

	remote, err := a2id.Parse(*remoteArg, false)
	if err != nil {
		logger.Error().Err(err).Str("remote", *remoteArg).Msg("invalid remote identifier")
		return exitError
	}

	local, err := a2id.Parse(*localArg, false)
	if err != nil {
		logger.Error().Err(err).Str("local", *localArg).Msg("invalid local identifier")
		return exitError
	}

	store := acl.NewDiskStore()
	if err := store.Open(*policyPath + ".db"); err != nil {
		logger.Error().Err(err).Msg("opening rule store")
		return exitError
	}
	defer store.Close()

	loader := policyfile.NewLoader(store)
	loader.Logger = logger

	if _, err := loader.Import(*policyPath); err != nil {
		logger.Error().Err(err).Msg("importing policy file")
		return exitError
	}

	engine := acl.NewEngine(store, acl.WithLogger(logger))
	list, err := engine.Whichlist(remote, local)
	if err != nil {
		logger.Error().Err(err).Msg("deciding list")
		return exitError
	}

	fmt.Printf("%s (%s)\n", list, list.MailAction())

	switch list {
	case acl.Whitelist:
		return exitWhitelist
	case acl.Blacklist:
		return exitBlacklist
	case acl.Abandoned:
		return exitAbandoned
	default:
		return exitGreylist
	}
}
