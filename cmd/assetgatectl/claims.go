package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"assetgate/internal/identity/claims"
	"assetgate/pkg/domain"
)

type keyOutput struct {
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
}

// CmdKeygen generates a claim signing key for a trusted issuer.
func CmdKeygen() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a secp256k1 claim signing key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			return writeJSON(cmd, keyOutput{
				Address:    crypto.PubkeyToAddress(key.PublicKey).Hex(),
				PrivateKey: hex.EncodeToString(crypto.FromECDSA(key)),
			})
		},
	}
}

// claimBody is the request body POST /claims/{identity} accepts.
type claimBody struct {
	Topic     domain.Topic `json:"topic"`
	Issuer    string       `json:"issuer"`
	Signature string       `json:"signature"`
	Data      string       `json:"data,omitempty"`
	URI       string       `json:"uri,omitempty"`
}

// CmdSignClaim signs a claim about an identity with an issuer key.
func CmdSignClaim() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign-claim",
		Short: "Sign a claim and print the body to submit to /claims/{identity}",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawKey, _ := cmd.Flags().GetString("key")
			key, err := crypto.HexToECDSA(strings.TrimPrefix(rawKey, "0x"))
			if err != nil {
				return fmt.Errorf("--key: %w", err)
			}
			rawIssuer, _ := cmd.Flags().GetString("issuer")
			issuer, err := domain.ParseAddress(rawIssuer)
			if err != nil {
				return fmt.Errorf("--issuer: %w", err)
			}
			rawIdentity, _ := cmd.Flags().GetString("identity")
			identity, err := domain.ParseAddress(rawIdentity)
			if err != nil {
				return fmt.Errorf("--identity: %w", err)
			}
			topic, _ := cmd.Flags().GetUint64("topic")
			rawData, _ := cmd.Flags().GetString("data")
			data, err := hex.DecodeString(strings.TrimPrefix(rawData, "0x"))
			if err != nil {
				return fmt.Errorf("--data: %w", err)
			}
			uri, _ := cmd.Flags().GetString("uri")

			sig, err := claims.Sign(key, identity, domain.Topic(topic), data)
			if err != nil {
				return err
			}
			body := claimBody{
				Topic:     domain.Topic(topic),
				Issuer:    issuer.Hex(),
				Signature: "0x" + hex.EncodeToString(sig),
				URI:       uri,
			}
			if len(data) > 0 {
				body.Data = "0x" + hex.EncodeToString(data)
			}
			return writeJSON(cmd, body)
		},
	}

	cmd.Flags().String("key", "", "hex private key registered for the issuer")
	cmd.Flags().String("issuer", "", "trusted issuer address the claim is attributed to")
	cmd.Flags().String("identity", "", "identity address the claim is about")
	cmd.Flags().Uint64("topic", 0, "claim topic")
	cmd.Flags().String("data", "", "hex claim payload")
	cmd.Flags().String("uri", "", "optional claim URI")
	for _, name := range []string{"key", "issuer", "identity", "topic"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
