package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"anchor-client-sol/internal/svc"
	"anchor-client-sol/pkg/consts"
	"anchor-client-sol/pkg/discriminator"
	"anchor-client-sol/pkg/pda"
	"anchor-client-sol/pkg/types"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/jsonx"
	"gopkg.in/yaml.v3"
)

const commandTimeout = 15 * time.Second

// field 文本输出时保持字段顺序
type field struct {
	Key   string
	Value any
}

func printFields(w io.Writer, fields []field) error {
	switch flagOutput {
	case "json":
		m := make(map[string]any, len(fields))
		for _, f := range fields {
			m[f.Key] = f.Value
		}
		b, err := jsonx.Marshal(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "text", "":
		for _, f := range fields {
			fmt.Fprintf(w, "%-14s %v\n", f.Key+":", f.Value)
		}
		return nil
	default:
		return fmt.Errorf("invalid --output: %s (use json|text)", flagOutput)
	}
}

func init() {
	var accountNamespace bool
	discCmd := &cobra.Command{
		Use:   "discriminator <name>",
		Short: "Print the 8-byte instruction (or account) discriminator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := discriminator.Instruction(args[0])
			ns := discriminator.NamespaceGlobal
			if accountNamespace {
				d = discriminator.Account(args[0])
				ns = discriminator.NamespaceAccount
			}
			return printFields(cmd.OutOrStdout(), []field{
				{"name", args[0]},
				{"namespace", ns},
				{"hex", d.String()},
				{"u64_be", strconv.FormatUint(d.Uint64(), 10)},
			})
		},
	}
	discCmd.Flags().BoolVar(&accountNamespace, "account", false, "Use the account namespace instead of the instruction one")
	rootCmd.AddCommand(discCmd)

	pdaCmd := &cobra.Command{
		Use:   "pda <program> [seed...]",
		Short: "Derive a program address (seeds: pubkey:/hex:/u8:/u16:/u32:/u64:/str: or raw text)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := types.TryPubkeyFromBase58(args[0])
			if err != nil {
				return err
			}
			seeds, err := parseSeeds(args[1:])
			if err != nil {
				return err
			}
			addr, bump, err := pda.FindProgramAddress(seeds, program)
			if err != nil {
				return err
			}
			return printFields(cmd.OutOrStdout(), []field{
				{"program", program.ToBase58()},
				{"address", addr.ToBase58()},
				{"bump", bump},
			})
		},
	}
	rootCmd.AddCommand(pdaCmd)

	var token2022 bool
	ataCmd := &cobra.Command{
		Use:   "ata <wallet> <mint>",
		Short: "Derive an associated token account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wallet, err := types.TryPubkeyFromBase58(args[0])
			if err != nil {
				return err
			}
			mint, err := types.TryPubkeyFromBase58(args[1])
			if err != nil {
				return err
			}
			tokenProgram := consts.TokenProgram
			if token2022 {
				tokenProgram = consts.TokenProgram2022
			}
			addr, bump, err := pda.FindAssociatedTokenAddress(wallet, mint, tokenProgram)
			if err != nil {
				return err
			}
			return printFields(cmd.OutOrStdout(), []field{
				{"wallet", wallet.ToBase58()},
				{"mint", mint.ToBase58()},
				{"token_program", tokenProgram.ToBase58()},
				{"address", addr.ToBase58()},
				{"bump", bump},
			})
		},
	}
	ataCmd.Flags().BoolVar(&token2022, "token-2022", false, "Use the Token-2022 program")
	rootCmd.AddCommand(ataCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "account <address>",
		Short: "Fetch an account and print its owner, balance and discriminator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := types.TryPubkeyFromBase58(args[0])
			if err != nil {
				return err
			}
			return withService(func(sc *svc.ServiceContext) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()
				acc, err := sc.Query.GetAccount(ctx, addr)
				if err != nil {
					return err
				}
				disc := ""
				if d, ok := discriminator.FromBytes(acc.Data); ok {
					disc = d.String()
				}
				return printFields(cmd.OutOrStdout(), []field{
					{"address", addr.ToBase58()},
					{"owner", acc.Owner.ToBase58()},
					{"lamports", acc.Lamports},
					{"data_len", len(acc.Data)},
					{"discriminator", disc},
					{"executable", acc.Executable},
					{"data_hex", hex.EncodeToString(acc.Data)},
				})
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "exists <address>",
		Short: "Classify an address as exists / needs_reinitialization / not_found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := types.TryPubkeyFromBase58(args[0])
			if err != nil {
				return err
			}
			return withService(func(sc *svc.ServiceContext) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()
				return printFields(cmd.OutOrStdout(), []field{
					{"address", addr.ToBase58()},
					{"state", sc.Query.Exists(ctx, addr).String()},
				})
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "rent <data_len>",
		Short: "Minimum balance for rent exemption of an account with the given data length",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataLen, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid data length %q: %w", args[0], err)
			}
			return withService(func(sc *svc.ServiceContext) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
				defer cancel()
				lamports, err := sc.Query.MinimumBalanceForRentExemption(ctx, dataLen)
				if err != nil {
					return err
				}
				return printFields(cmd.OutOrStdout(), []field{
					{"data_len", dataLen},
					{"lamports", lamports},
				})
			})
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (defaults applied) as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCfg()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(c)
		},
	})
}
