/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

const (
	keyFileFlagName  = "key-file"
	keyFileEnvKey    = "CREDENGINE_KEY_FILE"
	keyFileFlagUsage = "File holding the issuer key pair, as written by the keygen command." +
		" Alternatively, this can be set with the following environment variable: " + keyFileEnvKey

	issuerFlagName  = "issuer"
	issuerEnvKey    = "CREDENGINE_ISSUER"
	issuerFlagUsage = "Issuer identifier to bind into the credential." +
		" Alternatively, this can be set with the following environment variable: " + issuerEnvKey

	holderFlagName  = "holder"
	holderEnvKey    = "CREDENGINE_HOLDER"
	holderFlagUsage = "Holder identifier to bind into the credential." +
		" Alternatively, this can be set with the following environment variable: " + holderEnvKey

	credentialTypeFlagName  = "credential-type"
	credentialTypeEnvKey    = "CREDENGINE_CREDENTIAL_TYPE"
	credentialTypeFlagUsage = "Credential type selecting the claim order. Defaults to " +
		credential.WalletIdentityCredentialType + "." +
		" Alternatively, this can be set with the following environment variable: " + credentialTypeEnvKey

	subjectFileFlagName  = "subject-file"
	subjectFileEnvKey    = "CREDENGINE_SUBJECT_FILE"
	subjectFileFlagUsage = "JSON file holding the credential subject claims." +
		" Alternatively, this can be set with the following environment variable: " + subjectFileEnvKey

	issueOutFileFlagName  = "out-file"
	issueOutFileEnvKey    = "CREDENGINE_ISSUE_OUT_FILE"
	issueOutFileFlagUsage = "File to write the issued credential to. Defaults to standard output." +
		" Alternatively, this can be set with the following environment variable: " + issueOutFileEnvKey
)

// IssueCmd returns the Cobra issue command.
func IssueCmd() *cobra.Command {
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a credential",
		Long:  "Sign a credential subject under the claim order of its credential type",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyFilePath, err := getUserSetVar(cmd, keyFileFlagName, keyFileEnvKey, false)
			if err != nil {
				return err
			}

			issuerID, err := getUserSetVar(cmd, issuerFlagName, issuerEnvKey, false)
			if err != nil {
				return err
			}

			holderID, err := getUserSetVar(cmd, holderFlagName, holderEnvKey, false)
			if err != nil {
				return err
			}

			credentialType, err := getUserSetVar(cmd, credentialTypeFlagName, credentialTypeEnvKey, true)
			if err != nil {
				return err
			}

			if credentialType == "" {
				credentialType = credential.WalletIdentityCredentialType
			}

			subjectFile, err := getUserSetVar(cmd, subjectFileFlagName, subjectFileEnvKey, false)
			if err != nil {
				return err
			}

			outFile, err := getUserSetVar(cmd, issueOutFileFlagName, issueOutFileEnvKey, true)
			if err != nil {
				return err
			}

			kp, err := readKeyFile(keyFilePath)
			if err != nil {
				return err
			}

			subject, err := readSubjectFile(subjectFile)
			if err != nil {
				return err
			}

			issuer, err := credential.NewIssuer(issuerID, kp)
			if err != nil {
				return err
			}

			vc, err := issuer.IssueCredential(holderID, credentialType, subject)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(vc, "", "  ")
			if err != nil {
				return err
			}

			return writeOutput(cmd, outFile, data)
		},
	}

	issueCmd.Flags().StringP(keyFileFlagName, "k", "", keyFileFlagUsage)
	issueCmd.Flags().StringP(issuerFlagName, "i", "", issuerFlagUsage)
	issueCmd.Flags().StringP(holderFlagName, "d", "", holderFlagUsage)
	issueCmd.Flags().StringP(credentialTypeFlagName, "t", "", credentialTypeFlagUsage)
	issueCmd.Flags().StringP(subjectFileFlagName, "s", "", subjectFileFlagUsage)
	issueCmd.Flags().StringP(issueOutFileFlagName, "o", "", issueOutFileFlagUsage)

	return issueCmd
}

func readSubjectFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read subject file: %w", err)
	}

	var subject map[string]interface{}

	if err := json.Unmarshal(data, &subject); err != nil {
		return nil, fmt.Errorf("parse subject file: %w", err)
	}

	return subject, nil
}
