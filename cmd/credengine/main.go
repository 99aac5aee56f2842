/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main (credengine) is a command line tool for issuing selective
// disclosure credentials, deriving presentations from them and verifying both.
package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperledger/aries-framework-go/component/log"

	"github.com/trustbloc/credengine-go/cmd/credengine/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use: "credengine",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	logger := log.New("credengine/cmd")

	rootCmd.AddCommand(commands.KeygenCmd())
	rootCmd.AddCommand(commands.IssueCmd())
	rootCmd.AddCommand(commands.PresentCmd())
	rootCmd.AddCommand(commands.VerifyCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Fatalf("Failed to run credengine: %s", err)
	}
}
