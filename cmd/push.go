package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/account-brief/internal/apperr"
	"github.com/sells-group/account-brief/internal/export"
	"github.com/sells-group/account-brief/internal/model"
)

var pushFile string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push a saved brief to HubSpot",
	Long:  "Reads a brief (or push request) JSON document and writes the company, contacts and note to HubSpot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("push"); err != nil {
			return err
		}
		if err := cfg.RequirePush(); err != nil {
			return err
		}

		req, err := readPushRequest(pushFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}

		res, err := env.Pusher.Push(cmd.Context(), req)
		if err != nil {
			return err
		}
		return export.WriteJSON(cmd.OutOrStdout(), res)
	},
}

// readPushRequest decodes a push request from path, or from stdin when path
// is "-". Brief documents decode directly since they share the field names.
func readPushRequest(path string, stdin io.Reader) (model.PushRequest, error) {
	var req model.PushRequest

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return req, eris.Wrapf(err, "open %s", path)
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return req, eris.Wrap(err, "decode push request")
	}
	if req.Domain == "" {
		return req, apperr.NewValidationError("domain", "Domain is required")
	}
	return req, nil
}

func init() {
	pushCmd.Flags().StringVarP(&pushFile, "file", "f", "", "brief JSON file to push (- for stdin)")
	_ = pushCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(pushCmd)
}
