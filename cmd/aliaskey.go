package main

import (
	"fmt"

	"github.com/mailio/go-mailio-alias-server/alias"
	"github.com/spf13/cobra"
)

var secretLength int

func init() {
	aliasKeyCmd.Flags().IntVarP(&secretLength, "length", "n", 32, "secret key length")
	rootCmd.AddCommand(aliasKeyCmd)
}

// aliasKeyCmd generates a new secret key offline, e.g. for seeding a
// key ring by hand
var aliasKeyCmd = &cobra.Command{
	Use:   "aliaskey",
	Short: "Generate a new alias secret key",
	Long:  "Generate a new URL-safe random secret key for the alias key ring",
	Run: func(cmd *cobra.Command, args []string) {
		provider, pErr := alias.DefaultProvider()
		check(pErr)
		secret, sErr := alias.GenerateSecureRandomString(provider, secretLength)
		check(sErr)
		fmt.Printf("%s\n", secret)
	},
}
