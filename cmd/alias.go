package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mailio/go-mailio-alias-server/alias"
	"github.com/spf13/cobra"
)

var aliasSecret string
var aliasParts []string
var aliasDomain string
var aliasHashLength int

var validateAlias string
var validateKeys []string

func init() {
	aliasCmd.Flags().StringVarP(&aliasSecret, "secret", "s", "", "secret key")
	aliasCmd.Flags().StringSliceVarP(&aliasParts, "part", "p", nil, "alias part (repeatable)")
	aliasCmd.Flags().StringVarP(&aliasDomain, "domain", "d", "", "alias domain")
	aliasCmd.Flags().IntVarP(&aliasHashLength, "hashLength", "l", alias.DefaultHashLength, "signature length in hex characters")
	aliasCmd.MarkFlagRequired("secret")
	aliasCmd.MarkFlagRequired("part")
	aliasCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(aliasCmd)

	validateCmd.Flags().StringVarP(&validateAlias, "alias", "a", "", "full alias address")
	validateCmd.Flags().StringSliceVarP(&validateKeys, "key", "k", nil, "secret=recipient pair (repeatable)")
	validateCmd.Flags().IntVarP(&aliasHashLength, "hashLength", "l", alias.DefaultHashLength, "signature length in hex characters")
	validateCmd.MarkFlagRequired("alias")
	validateCmd.MarkFlagRequired("key")
	rootCmd.AddCommand(validateCmd)
}

// aliasCmd generates an alias offline, without a running server
var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Generate a verifiable alias offline",
	Long:  "Generate a deterministic verifiable alias from a secret key, without a running server",
	Run: func(cmd *cobra.Command, args []string) {
		provider, pErr := alias.DefaultProvider()
		check(pErr)
		generated, gErr := alias.Generate(provider, aliasSecret, aliasParts, aliasDomain, aliasHashLength)
		check(gErr)
		fmt.Printf("%s\n", generated)
	},
}

// validateCmd validates an alias offline against secret=recipient pairs
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an alias offline",
	Long:  "Validate an alias against secret=recipient pairs, without a running server",
	Run: func(cmd *cobra.Command, args []string) {
		ring := map[string]string{}
		for _, pair := range validateKeys {
			secret, recipient, found := strings.Cut(pair, "=")
			if !found {
				fmt.Printf("Invalid key pair (expected secret=recipient): %s\n", pair)
				os.Exit(1)
			}
			ring[secret] = recipient
		}

		provider, pErr := alias.DefaultProvider()
		check(pErr)
		recipient := alias.Validate(provider, ring, validateAlias, aliasHashLength)
		if recipient == "" {
			fmt.Printf("invalid\n")
			os.Exit(1)
		}
		fmt.Printf("valid, delivers to %s\n", recipient)
	},
}
