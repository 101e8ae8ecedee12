package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-jose/go-jose/v4"
	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/keyring"
	"github.com/riskplane/riskplane-core/pkg/policy"
)

var (
	policySignKey string
	policySignOut string
	policyVerKey  string
	policyInitOut string
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Manage scoring policies",
}

var policySignCmd = &cobra.Command{
	Use:   "sign <policy.json>",
	Short: "Sign a policy with an Ed25519 private key",
	Long: `Sign a policy document and write a signed envelope containing the
policy and a compact JWS over its canonical JSON. Scoring commands accept
signed and plain policy files interchangeably; use "policy verify" to
check a signature.`,
	Args: cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		pol, err := policy.LoadFile(args[0])
		if err != nil {
			return err
		}

		key, err := loadJWK(policySignKey)
		if err != nil {
			return err
		}

		env, err := policy.Sign(pol, key)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(policySignOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write signed policy: %w", err)
		}

		fmt.Printf("✅ Signed policy saved to %s\n", policySignOut)
		return nil
	},
}

var policyVerifyCmd = &cobra.Command{
	Use:   "verify <signed-policy.json>",
	Short: "Verify a signed policy",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read signed policy: %w", err)
		}

		env, err := policy.ParseEnvelope(data)
		if err != nil {
			return err
		}

		var pol *policy.Policy
		if policyVerKey != "" {
			key, err := loadJWK(policyVerKey)
			if err != nil {
				return err
			}
			pol, err = policy.Verify(env, key)
			if err != nil {
				return err
			}
		} else {
			pol, err = verifyWithKeyring(env)
			if err != nil {
				return err
			}
		}

		fmt.Println("✅ POLICY SIGNATURE VALID")
		fmt.Printf("Policy: %s (%s) version %s, %d rules\n", pol.Name, pol.ID, pol.Version, len(pol.Rules))
		return nil
	},
}

var policyInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in default policy to a file",
	RunE: func(_ *cobra.Command, _ []string) error {
		data, err := json.MarshalIndent(policy.Default(), "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(policyInitOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write policy: %w", err)
		}
		fmt.Println(policyInitOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policySignCmd)
	policyCmd.AddCommand(policyVerifyCmd)
	policyCmd.AddCommand(policyInitCmd)

	policySignCmd.Flags().StringVar(&policySignKey, "key", "private.jwk", "Private key (JWK format)")
	policySignCmd.Flags().StringVar(&policySignOut, "out", "policy.signed.json", "Output path for the signed policy")
	policyVerifyCmd.Flags().StringVar(&policyVerKey, "key", "", "Public key (JWK format); defaults to the local keyring")
	policyInitCmd.Flags().StringVar(&policyInitOut, "out", "policy.json", "Output path for the policy")
}

// verifyWithKeyring tries every key in the local keyring until one
// verifies the envelope.
func verifyWithKeyring(env *policy.Envelope) (*policy.Policy, error) {
	store, err := keyring.NewFileStore("")
	if err != nil {
		return nil, err
	}
	keys, err := store.List()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("keyring is empty; pass --key or add one with 'riskplane key add'")
	}

	for i := range keys {
		if pol, err := policy.Verify(env, &keys[i]); err == nil {
			return pol, nil
		}
	}
	return nil, policy.ErrInvalidSignature
}

// loadJWK reads a JSON Web Key from disk.
func loadJWK(path string) (*jose.JSONWebKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	var key jose.JSONWebKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to parse key file: %w", err)
	}
	return &key, nil
}
