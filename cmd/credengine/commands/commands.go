/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package commands contains the credengine subcommands: keygen, issue,
// present and verify.
package commands

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trustbloc/credengine-go/pkg/crypto/keypair"
)

// keyFile is the on-disk form of an issuer key pair.
type keyFile struct {
	SecretKey   string `json:"secretKey"`
	PublicKey   string `json:"publicKey"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func getUserSetVars(cmd *cobra.Command, flagName, envKey string, isOptional bool) ([]string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetStringSlice(flagName)
		if err != nil {
			return nil, fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	var values []string

	if isSet {
		values = strings.Split(value, ",")
	}

	if isOptional || isSet {
		return values, nil
	}

	return nil, errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

// writeOutput writes data to outFile, or to the command output stream when no
// file is given.
func writeOutput(cmd *cobra.Command, outFile string, data []byte) error {
	if outFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		return nil
	}

	const ownerReadWrite = 0o600

	if err := os.WriteFile(outFile, data, ownerReadWrite); err != nil {
		return fmt.Errorf("write %s: %w", outFile, err)
	}

	return nil
}

func readKeyFile(path string) (*keypair.KeyPair, error) {
	data, err := os.ReadFile(path) // nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	var kf keyFile

	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse key file: %w", err)
	}

	secretKey, err := base64.StdEncoding.DecodeString(kf.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("parse key file: secret key: %w", err)
	}

	publicKey, err := base64.StdEncoding.DecodeString(kf.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("parse key file: public key: %w", err)
	}

	kp := &keypair.KeyPair{SecretKey: secretKey, PublicKey: publicKey}

	if !keypair.IsValidSecretKey(kp.SecretKey) || !keypair.IsValidPublicKey(kp.PublicKey) {
		return nil, errors.New("parse key file: invalid key pair")
	}

	return kp, nil
}

func marshalKeyFile(kp *keypair.KeyPair) ([]byte, error) {
	fingerprint, err := kp.Fingerprint()
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(&keyFile{
		SecretKey:   base64.StdEncoding.EncodeToString(kp.SecretKey),
		PublicKey:   base64.StdEncoding.EncodeToString(kp.PublicKey),
		Fingerprint: fingerprint,
	}, "", "  ")
}
