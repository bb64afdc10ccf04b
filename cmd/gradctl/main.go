package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	curve "github.com/gradientswap/gradient-go/order_curve/math"
	oc "github.com/gradientswap/gradient-go/order_curve/shared"
	"github.com/gradientswap/gradient-go/strategy"
)

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func main() {
	logger, err := newLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "gradctl",
		Short:         "Inspect and quote gradient order curves",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(encodeCmd(), decodeCmd(), quoteCmd(logger), gradCmd())

	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func encodeCmd() *cobra.Command {
	var rate string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a decimal rate into its packed representation",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decimal.NewFromString(rate)
			if err != nil {
				return err
			}
			packed, err := strategy.EncodeRateFromDecimal(d)
			if err != nil {
				return err
			}
			decoded, err := curve.DecodeRate(packed)
			if err != nil {
				return err
			}
			fmt.Printf("packed:  %d\n", packed)
			fmt.Printf("decoded: %s\n", strategy.RateToDecimal(decoded, 18))
			return nil
		},
	}
	cmd.Flags().StringVar(&rate, "rate", "", "decimal rate to encode")
	cmd.MarkFlagRequired("rate")
	return cmd
}

func decodeCmd() *cobra.Command {
	var packed uint64
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a packed rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := curve.DecodeRate(packed)
			if err != nil {
				return err
			}
			fmt.Printf("scaled:  %s\n", decoded)
			fmt.Printf("decimal: %s\n", strategy.RateToDecimal(decoded, 18))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&packed, "packed", 0, "packed rate value")
	cmd.MarkFlagRequired("packed")
	return cmd
}

func quoteCmd(logger *zap.Logger) *cobra.Command {
	var (
		orderFile    string
		sourceAmount string
		targetAmount string
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a trade against an order JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(orderFile)
			if err != nil {
				return err
			}
			order, err := strategy.ParseOrder(gjson.ParseBytes(data))
			if err != nil {
				return err
			}
			logger.Info("loaded order",
				zap.String("y", order.Y.String()),
				zap.String("z", order.Z.String()),
				zap.Uint64("A", order.A),
				zap.Uint64("B", order.B),
			)

			var res curve.TradeResult
			switch {
			case sourceAmount != "":
				amount, ok := new(big.Int).SetString(sourceAmount, 10)
				if !ok {
					return fmt.Errorf("invalid source amount %q", sourceAmount)
				}
				res, err = curve.TradeBySource(order, amount)
			case targetAmount != "":
				amount, ok := new(big.Int).SetString(targetAmount, 10)
				if !ok {
					return fmt.Errorf("invalid target amount %q", targetAmount)
				}
				res, err = curve.TradeByTarget(order, amount)
			default:
				return fmt.Errorf("either --source-amount or --target-amount is required")
			}
			if err != nil {
				return err
			}
			fmt.Printf("amount:  %s\n", res.Amount)
			fmt.Printf("order.y: %s\n", res.Order.Y)
			fmt.Printf("order.z: %s\n", res.Order.Z)
			return nil
		},
	}
	cmd.Flags().StringVar(&orderFile, "order", "", "path to an order JSON file")
	cmd.Flags().StringVar(&sourceAmount, "source-amount", "", "trade by source amount")
	cmd.Flags().StringVar(&targetAmount, "target-amount", "", "trade by target amount")
	cmd.MarkFlagRequired("order")
	return cmd
}

func gradCmd() *cobra.Command {
	var (
		typeName string
		initial  string
		factor   string
		elapsed  uint64
	)
	cmd := &cobra.Command{
		Use:   "grad",
		Short: "Evaluate a gradient curve rate after elapsed seconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			gradientType, err := oc.ParseGradientType(typeName)
			if err != nil {
				return fmt.Errorf("unknown gradient type %q", typeName)
			}
			initialDec, err := decimal.NewFromString(initial)
			if err != nil {
				return err
			}
			factorDec, err := decimal.NewFromString(factor)
			if err != nil {
				return err
			}
			initialRate, err := strategy.EncodeInitialRateFromDecimal(initialDec)
			if err != nil {
				return err
			}
			multiFactor, err := strategy.EncodeMultiFactorFromDecimal(factorDec)
			if err != nil {
				return err
			}
			f, err := curve.CalcCurrentRate(gradientType, initialRate, multiFactor, elapsed)
			if err != nil {
				return err
			}
			fmt.Printf("rate: %s / %s\n", f.N, f.D)
			fmt.Printf("decimal: %s\n", strategy.FractionToDecimal(f, 30))
			return nil
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "linear-increase", "gradient type")
	cmd.Flags().StringVar(&initial, "initial", "", "initial decimal rate")
	cmd.Flags().StringVar(&factor, "factor", "", "per-second decimal multi-factor")
	cmd.Flags().Uint64Var(&elapsed, "elapsed", 0, "elapsed seconds")
	cmd.MarkFlagRequired("initial")
	cmd.MarkFlagRequired("factor")
	return cmd
}
