// SPDX-FileCopyrightText: Copyright 2025 The githubkit Authors
// SPDX-License-Identifier: MIT

// An example CLI which can fetch installation tokens for a github app
// and act like git credentials plugin.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hubforge/githubkit"
)

var privFile string
var appID uint64
var installationID uint64
var endpoint string
var gitCredMode bool

//nolint:forbidigo // example script.
func main() {
	flag.StringVar(&privFile, "key", "", "private key")
	flag.Uint64Var(&appID, "app-id", 0, "app id")
	flag.Uint64Var(&installationID, "install-id", 0, "installation id")
	flag.StringVar(&endpoint, "endpoint", "", "custom api endpoint")
	flag.BoolVar(&gitCredMode, "git-credentials", false, "git credentials mode")
	flag.Parse()

	if appID == 0 {
		log.Fatal("app id not specified")
	}

	if installationID == 0 {
		log.Fatal("installation id not specified")
	}

	if privFile == "" {
		log.Fatal("private key not specified")
	}

	slurp, err := os.ReadFile(privFile)
	if err != nil {
		log.Fatal(err)
	}

	creds, err := githubkit.NewCredentials(appID, slurp)
	if err != nil {
		log.Fatal(err)
	}

	client, err := githubkit.New(creds,
		githubkit.WithEndpoint(endpoint),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	token, err := client.Token(ctx, installationID)
	if err != nil {
		log.Fatal(err)
	}

	if gitCredMode {
		fmt.Printf("protocol=https\n")
		fmt.Printf("username=x-access-token\n")
		fmt.Printf("password=%s\n", token.Token)
		fmt.Printf("password_expiry_utc=%d\n", token.Exp.Truncate(time.Second).Unix())
		fmt.Println()
	} else {
		fmt.Printf("Token: %s\n", token.Token)
		fmt.Printf("Expires: %s\n", token.Exp)
	}
}
