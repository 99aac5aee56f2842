/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

const (
	credentialFileFlagName  = "credential-file"
	credentialFileEnvKey    = "CREDENGINE_CREDENTIAL_FILE"
	credentialFileFlagUsage = "File holding the credential to derive the presentation from." +
		" Alternatively, this can be set with the following environment variable: " + credentialFileEnvKey

	revealFlagName  = "reveal"
	revealEnvKey    = "CREDENGINE_REVEAL"
	revealFlagUsage = "Claim id to reveal. This flag can be repeated, allowing multiple claims to be revealed." +
		" Alternatively, this can be set with the following environment variable (in CSV format): " + revealEnvKey

	nonceFlagName  = "nonce"
	nonceEnvKey    = "CREDENGINE_NONCE"
	nonceFlagUsage = "Verifier-supplied presentation nonce. Defaults to a random UUID if not set." +
		" Alternatively, this can be set with the following environment variable: " + nonceEnvKey

	presentOutFileFlagName  = "out-file"
	presentOutFileEnvKey    = "CREDENGINE_PRESENT_OUT_FILE"
	presentOutFileFlagUsage = "File to write the presentation to. Defaults to standard output." +
		" Alternatively, this can be set with the following environment variable: " + presentOutFileEnvKey
)

// PresentCmd returns the Cobra present command.
func PresentCmd() *cobra.Command {
	presentCmd := &cobra.Command{
		Use:   "present",
		Short: "Derive a presentation",
		Long:  "Derive a selective disclosure presentation revealing only the named claims",
		RunE: func(cmd *cobra.Command, args []string) error {
			credentialFile, err := getUserSetVar(cmd, credentialFileFlagName, credentialFileEnvKey, false)
			if err != nil {
				return err
			}

			revealClaimIDs, err := getUserSetVars(cmd, revealFlagName, revealEnvKey, true)
			if err != nil {
				return err
			}

			nonce, err := getUserSetVar(cmd, nonceFlagName, nonceEnvKey, true)
			if err != nil {
				return err
			}

			if nonce == "" {
				nonce = uuid.New().String()
			}

			outFile, err := getUserSetVar(cmd, presentOutFileFlagName, presentOutFileEnvKey, true)
			if err != nil {
				return err
			}

			vc, err := readCredentialFile(credentialFile)
			if err != nil {
				return err
			}

			vp, err := credential.NewHolder().CreatePresentation(vc, revealClaimIDs, []byte(nonce))
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(vp, "", "  ")
			if err != nil {
				return err
			}

			return writeOutput(cmd, outFile, data)
		},
	}

	presentCmd.Flags().StringP(credentialFileFlagName, "c", "", credentialFileFlagUsage)
	presentCmd.Flags().StringSliceP(revealFlagName, "r", nil, revealFlagUsage)
	presentCmd.Flags().StringP(nonceFlagName, "n", "", nonceFlagUsage)
	presentCmd.Flags().StringP(presentOutFileFlagName, "o", "", presentOutFileFlagUsage)

	return presentCmd
}

func readCredentialFile(path string) (*credential.Credential, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	return credential.ParseCredential(data)
}
