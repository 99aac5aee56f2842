/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"github.com/spf13/cobra"

	"github.com/trustbloc/credengine-go/pkg/crypto/keypair"
)

const (
	keygenOutFileFlagName  = "out-file"
	keygenOutFileEnvKey    = "CREDENGINE_KEYGEN_OUT_FILE"
	keygenOutFileFlagUsage = "File to write the generated key pair to. Defaults to standard output." +
		" Alternatively, this can be set with the following environment variable: " + keygenOutFileEnvKey

	masterSecretFlagName  = "master-secret"
	masterSecretEnvKey    = "CREDENGINE_MASTER_SECRET" // nolint:gosec
	masterSecretFlagUsage = "Master secret for deterministic key derivation (optional)." +
		" When not set, a random key pair is generated." +
		" Alternatively, this can be set with the following environment variable: " + masterSecretEnvKey

	keyContextFlagName  = "key-context"
	keyContextEnvKey    = "CREDENGINE_KEY_CONTEXT"
	keyContextFlagUsage = "Context string separating key pairs derived from the same master secret (optional)." +
		" Alternatively, this can be set with the following environment variable: " + keyContextEnvKey
)

// KeygenCmd returns the Cobra keygen command.
func KeygenCmd() *cobra.Command {
	keygenCmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an issuer key pair",
		Long:  "Generate a BLS12-381 G2 issuer key pair, randomly or derived from a master secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			outFile, err := getUserSetVar(cmd, keygenOutFileFlagName, keygenOutFileEnvKey, true)
			if err != nil {
				return err
			}

			masterSecret, err := getUserSetVar(cmd, masterSecretFlagName, masterSecretEnvKey, true)
			if err != nil {
				return err
			}

			keyContext, err := getUserSetVar(cmd, keyContextFlagName, keyContextEnvKey, true)
			if err != nil {
				return err
			}

			var kp *keypair.KeyPair

			if masterSecret != "" {
				kp, err = keypair.Derive([]byte(masterSecret), keyContext)
			} else {
				kp, err = keypair.Generate()
			}

			if err != nil {
				return err
			}

			data, err := marshalKeyFile(kp)
			if err != nil {
				return err
			}

			return writeOutput(cmd, outFile, data)
		},
	}

	keygenCmd.Flags().StringP(keygenOutFileFlagName, "o", "", keygenOutFileFlagUsage)
	keygenCmd.Flags().StringP(masterSecretFlagName, "", "", masterSecretFlagUsage)
	keygenCmd.Flags().StringP(keyContextFlagName, "", "", keyContextFlagUsage)

	return keygenCmd
}
