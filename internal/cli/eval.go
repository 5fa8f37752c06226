package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eigerco/intsafe/internal/safemath"
	"github.com/eigerco/intsafe/internal/safemath/expr"
	"github.com/eigerco/intsafe/pkg/log"
)

type evalResult struct {
	Format string `json:"format"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
}

// NewEvalCommand creates the eval subcommand: parse a format string, tag
// each literal argument with the kind its position expects, and evaluate.
func NewEvalCommand(opts *RootOptions) *cobra.Command {
	var resultType string

	cmd := &cobra.Command{
		Use:   "eval FORMAT VALUE...",
		Short: "Evaluate a typed expression left to right",
		Example: `  safeiop eval "u8+u8" 10 10
  safeiop eval "u32*u32*u32" 1000 1000 8
  safeiop eval "s64-u8<<u8" 1024 1 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := expr.Parse(args[0])
			if err != nil {
				return err
			}
			kinds := program.OperandKinds()
			if len(args)-1 != len(kinds) {
				return fmt.Errorf("format %q needs %d operands, got %d: %w",
					args[0], len(kinds), len(args)-1, expr.ErrArgumentCount)
			}

			operands := make([]safemath.Value, 0, len(kinds))
			for i, k := range kinds {
				v, err := safemath.ParseValue(args[i+1], k)
				if err != nil {
					return fmt.Errorf("operand %d: %w", i, err)
				}
				operands = append(operands, v)
			}

			log.Eval.Debug().
				Str("format", args[0]).
				Int("operands", len(operands)).
				Msg("evaluating expression")

			result, err := program.Run(operands)
			if err != nil {
				return err
			}
			if resultType != "" {
				dst, err := safemath.ParseKind(resultType)
				if err != nil {
					return err
				}
				result, err = safemath.Cast(result, dst)
				if err != nil {
					return err
				}
			}

			if opts.JSON {
				value := strconv.FormatUint(result.Uint64(), 10)
				if result.Kind().IsSigned() {
					value = strconv.FormatInt(result.Int64(), 10)
				}
				out, err := json.MarshalIndent(evalResult{
					Format: args[0],
					Kind:   result.Kind().String(),
					Value:  value,
				}, "", "	")
				if err != nil {
					return err
				}
				cmd.Println(string(out))
				return nil
			}
			cmd.Println(result.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&resultType, "type", "", "cast the result to this type marker, e.g. u16")

	// Flags stop at the format string so negative operand literals
	// such as -100 are not mistaken for flags.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
