package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/home-inventory/internal/utils"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AuthSecret == "" {
			return errors.New("AUTH_TOKEN_SECRET is not set")
		}
		tok, err := utils.NewAccessToken(cfg.AuthSecret, tokenSubject, cfg.AuthTokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "who the token is issued to")
	_ = tokenCmd.MarkFlagRequired("subject")
}
