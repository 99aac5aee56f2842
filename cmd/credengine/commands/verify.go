/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

const (
	verifyCredentialFileFlagName  = "credential-file"
	verifyCredentialFileEnvKey    = "CREDENGINE_VERIFY_CREDENTIAL_FILE"
	verifyCredentialFileFlagUsage = "Credential file to verify." +
		" Alternatively, this can be set with the following environment variable: " + verifyCredentialFileEnvKey

	presentationFileFlagName  = "presentation-file"
	presentationFileEnvKey    = "CREDENGINE_PRESENTATION_FILE"
	presentationFileFlagUsage = "Presentation file to verify." +
		" Alternatively, this can be set with the following environment variable: " + presentationFileEnvKey
)

// VerifyCmd returns the Cobra verify command.
func VerifyCmd() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a credential or a presentation",
		Long:  "Verify a credential signature, or the selective disclosure proof of a presentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			credentialFile, err := getUserSetVar(cmd, verifyCredentialFileFlagName,
				verifyCredentialFileEnvKey, true)
			if err != nil {
				return err
			}

			presentationFile, err := getUserSetVar(cmd, presentationFileFlagName,
				presentationFileEnvKey, true)
			if err != nil {
				return err
			}

			if (credentialFile == "") == (presentationFile == "") {
				return errors.New("exactly one of " + verifyCredentialFileFlagName +
					" and " + presentationFileFlagName + " must be set")
			}

			result, err := runVerify(credentialFile, presentationFile)
			if err != nil {
				return err
			}

			data, err := json.Marshal(result)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			if !result.Verified {
				return errors.New("verification failed: " + result.Error)
			}

			return nil
		},
	}

	verifyCmd.Flags().StringP(verifyCredentialFileFlagName, "c", "", verifyCredentialFileFlagUsage)
	verifyCmd.Flags().StringP(presentationFileFlagName, "p", "", presentationFileFlagUsage)

	return verifyCmd
}

func runVerify(credentialFile, presentationFile string) (*credential.VerificationResult, error) {
	verifier := credential.NewVerifier()

	if credentialFile != "" {
		vc, err := readCredentialFile(credentialFile)
		if err != nil {
			return nil, err
		}

		verified, err := verifier.VerifyCredential(vc)
		if err != nil {
			return nil, err
		}

		result := &credential.VerificationResult{Verified: verified}

		if !verified {
			result.Error = "invalid credential signature"
		}

		return result, nil
	}

	data, err := os.ReadFile(presentationFile) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read presentation file: %w", err)
	}

	vp, err := credential.ParsePresentation(data)
	if err != nil {
		return nil, err
	}

	return verifier.VerifyPresentation(vp), nil
}
