package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/keyring"
)

var (
	keyOutPrivate string
	keyOutPublic  string
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage policy signing keys",
}

var keyGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a new Ed25519 key pair",
	Long: `Generate a new Ed25519 key pair for policy signing.

Outputs:
  - Private key in JWK format (for signing policies)
  - Public key in JWK format (for verification)`,
	Example: `  # Generate keys with default names
  riskplane key gen

  # Generate keys with custom names
  riskplane key gen --out-priv signer.key.jwk --out-pub signer.pub.jwk`,
	RunE: func(_ *cobra.Command, _ []string) error {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}

		kid := uuid.NewString()

		privJwk := jose.JSONWebKey{
			Key:       priv,
			KeyID:     kid,
			Algorithm: string(jose.EdDSA),
			Use:       "sig",
		}
		pubJwk := jose.JSONWebKey{
			Key:       pub,
			KeyID:     kid,
			Algorithm: string(jose.EdDSA),
			Use:       "sig",
		}

		privBytes, err := json.MarshalIndent(privJwk, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(keyOutPrivate, privBytes, 0600); err != nil {
			return fmt.Errorf("failed to write private key: %w", err)
		}
		fmt.Printf("✅ Private Key saved to %s\n", keyOutPrivate)

		pubBytes, err := json.MarshalIndent(pubJwk, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(keyOutPublic, pubBytes, 0644); err != nil {
			return fmt.Errorf("failed to write public key: %w", err)
		}
		fmt.Printf("✅ Public Key saved to %s\n", keyOutPublic)

		fmt.Printf("🔑 Key ID: %s\n", kid)
		return nil
	},
}

var keyAddCmd = &cobra.Command{
	Use:   "add <public.jwk>",
	Short: "Add a public key to the local keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		key, err := loadJWK(args[0])
		if err != nil {
			return err
		}

		store, err := keyring.NewFileStore("")
		if err != nil {
			return err
		}
		if err := store.Add(*key); err != nil {
			return err
		}

		fmt.Printf("✅ Key %s added to keyring\n", key.KeyID)
		return nil
	},
}

var keyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keys in the local keyring",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := keyring.NewFileStore("")
		if err != nil {
			return err
		}
		keys, err := store.List()
		if err != nil {
			return err
		}

		if len(keys) == 0 {
			fmt.Println("keyring is empty")
			return nil
		}
		for _, k := range keys {
			fmt.Printf("%s  alg=%s use=%s\n", k.KeyID, k.Algorithm, k.Use)
		}
		return nil
	},
}

var keyRemoveCmd = &cobra.Command{
	Use:   "remove <kid>",
	Short: "Remove a key from the local keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := keyring.NewFileStore("")
		if err != nil {
			return err
		}
		if err := store.Remove(args[0]); err != nil {
			return err
		}

		fmt.Printf("✅ Key %s removed from keyring\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyGenCmd)
	keyCmd.AddCommand(keyAddCmd)
	keyCmd.AddCommand(keyListCmd)
	keyCmd.AddCommand(keyRemoveCmd)

	keyGenCmd.Flags().StringVar(&keyOutPrivate, "out-priv", "private.jwk", "Output path for private key (JWK format)")
	keyGenCmd.Flags().StringVar(&keyOutPublic, "out-pub", "public.jwk", "Output path for public key (JWK format)")
}
