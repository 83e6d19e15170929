package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/accumanage/portal/internal/api/dto"
	"github.com/accumanage/portal/internal/auth"
)

// DecodeResult is one decoder's verdict.
type DecodeResult struct {
	OK     bool                `json:"ok"`
	Error  string              `json:"error,omitempty"`
	Claims *dto.ClaimsResponse `json:"claims,omitempty"`
}

// InspectReport compares both decoders on one token.
type InspectReport struct {
	Codec DecodeResult `json:"codec"`
	Edge  DecodeResult `json:"edge"`
	Agree bool         `json:"agree"`
}

// ErrDecodersDisagree is returned when the two decoders reach different
// verdicts for the same token.
var ErrDecodersDisagree = errors.New("decoders disagree")

func newInspectCommand(load ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a token with both decoders and compare the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			token := strings.TrimSpace(args[0])
			report := Inspect(auth.NewTokenCodec(cfg.Auth), auth.NewEdgeDecoder(cfg.Auth), token)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Agree {
				return ErrDecodersDisagree
			}
			return nil
		},
	}
}

// Inspect runs token through both decoders.
func Inspect(codec, edge auth.Decoder, token string) InspectReport {
	report := InspectReport{
		Codec: decodeWith(codec, token),
		Edge:  decodeWith(edge, token),
	}
	report.Agree = report.Codec.OK == report.Edge.OK && report.Codec.Error == report.Edge.Error
	if report.Agree && report.Codec.OK {
		report.Agree = *report.Codec.Claims == *report.Edge.Claims
	}
	return report
}

func decodeWith(decoder auth.Decoder, token string) DecodeResult {
	claims, err := decoder.Decode(token)
	if err != nil {
		return DecodeResult{Error: err.Error()}
	}
	resp := dto.FromClaims(claims)
	return DecodeResult{OK: true, Claims: &resp}
}
